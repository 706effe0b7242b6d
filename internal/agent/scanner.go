package agent

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

// realFilesystems lists the filesystem types treated as actual storage
// volumes. Everything else in the mount table is kernel plumbing.
var realFilesystems = map[string]struct{}{
	"ext2":    {},
	"ext3":    {},
	"ext4":    {},
	"xfs":     {},
	"btrfs":   {},
	"vfat":    {},
	"exfat":   {},
	"ntfs":    {},
	"ntfs3":   {},
	"fuseblk": {},
	"hfsplus": {},
}

// removableMountPrefixes marks the mount locations used by desktop
// auto-mounters for removable media.
var removableMountPrefixes = []string{"/media/", "/run/media/"}

type mountScanner struct {
	mountTablePath string
	cloudRoots     []string
	diskByUUIDDir  string
	diskByLabelDir string

	// statfs is replaceable in tests; the real implementation queries the
	// kernel for volume capacity.
	statfs func(path string) (total, available int64, err error)

	logger *logger.Logger
}

func NewMountScanner(cfg config.AgentScan, log *logger.Logger) Scanner {
	return &mountScanner{
		mountTablePath: cfg.MountTablePath,
		cloudRoots:     cfg.CloudRoots,
		diskByUUIDDir:  "/dev/disk/by-uuid",
		diskByLabelDir: "/dev/disk/by-label",
		statfs:         statfsSpace,
		logger:         log,
	}
}

func (s *mountScanner) Scan(ctx context.Context) ([]models.DriveInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.mountTablePath)
	if err != nil {
		return nil, fmt.Errorf("open mount table: %w", err)
	}
	defer file.Close()

	uuidByDevice := resolveSymlinkDir(s.diskByUUIDDir)
	labelByDevice := resolveSymlinkDir(s.diskByLabelDir)

	var drives []models.DriveInfo
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		device, mountPoint, fsType := fields[0], unescapeMountPath(fields[1]), fields[2]

		if _, real := realFilesystems[fsType]; !real {
			continue
		}

		info := models.DriveInfo{
			UniqueIdentifier: deviceIdentifier(device, uuidByDevice),
			DriveType:        classifyMountPoint(mountPoint),
			VolumeLabel:      labelByDevice[device],
			MountPoint:       models.ClientPath(mountPoint),
			IsAvailable:      true,
		}

		if total, available, err := s.statfs(mountPoint); err == nil {
			info.TotalSpace = total
			info.AvailableSpace = available
		} else {
			s.logger.Warn().Err(err).Str("mount_point", mountPoint).Msg("could not read volume capacity")
		}

		drives = append(drives, info)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mount table: %w", err)
	}

	drives = append(drives, s.scanCloudRoots()...)

	return drives, nil
}

// scanCloudRoots turns the configured "provider=path" entries into cloud
// drive reports. A root that does not exist locally is reported anyway:
// cloud storage stays reachable even when the sync folder is gone.
func (s *mountScanner) scanCloudRoots() []models.DriveInfo {
	var drives []models.DriveInfo
	for _, root := range s.cloudRoots {
		provider, path, found := strings.Cut(root, "=")
		if !found || provider == "" || path == "" {
			s.logger.Warn().Str("cloud_root", root).Msg("malformed cloud root, expected provider=path")
			continue
		}

		p := provider
		info := models.DriveInfo{
			UniqueIdentifier: "cloud:" + provider + ":" + path,
			DriveType:        models.DriveTypeCloud,
			VolumeLabel:      provider,
			CloudProvider:    &p,
			MountPoint:       models.ClientPath(path),
			IsAvailable:      true,
		}

		if total, available, err := s.statfs(path); err == nil {
			info.TotalSpace = total
			info.AvailableSpace = available
		}

		drives = append(drives, info)
	}

	return drives
}

// deviceIdentifier prefers the volume UUID because it survives the device
// being plugged into a different port or machine. The device path is the
// fallback for volumes without one.
func deviceIdentifier(device string, uuidByDevice map[string]string) string {
	if id, ok := uuidByDevice[device]; ok {
		return "uuid:" + id
	}
	return "dev:" + device
}

func classifyMountPoint(mountPoint string) models.DriveType {
	for _, prefix := range removableMountPrefixes {
		if strings.HasPrefix(mountPoint, prefix) {
			return models.DriveTypeUSB
		}
	}
	return models.DriveTypeFixed
}

// resolveSymlinkDir builds a device-path to entry-name map from a
// /dev/disk/by-* directory. Missing directories yield an empty map, which
// simply disables the lookup.
func resolveSymlinkDir(dir string) map[string]string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return map[string]string{}
	}

	byDevice := make(map[string]string, len(entries))
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		device := target
		if !filepath.IsAbs(device) {
			device = filepath.Clean(filepath.Join(dir, target))
		}
		byDevice[device] = entry.Name()
	}

	return byDevice
}

// unescapeMountPath decodes the octal escapes the kernel uses in
// /proc/mounts for spaces, tabs, and backslashes.
func unescapeMountPath(path string) string {
	replacer := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return replacer.Replace(path)
}

func statfsSpace(path string) (total, available int64, err error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	blockSize := int64(st.Bsize)
	return int64(st.Blocks) * blockSize, int64(st.Bavail) * blockSize, nil
}
