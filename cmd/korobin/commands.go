package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/containerd/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/woozymasta/korobin"
	"github.com/woozymasta/korobin/level"
)

func compressCommand(s *state) cli.Command {
	return cli.Command{
		Name:      "compress",
		Usage:     "compress a raw level into a .bin container",
		ArgsUsage: "<src> <dst.bin>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			src, dst := c.Args().Get(0), c.Args().Get(1)

			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			if err := (&level.File{Path: dst}).Write(data); err != nil {
				return err
			}

			log.G(commandContext(c)).WithFields(logrus.Fields{
				"src":  src,
				"dst":  dst,
				"size": len(data),
			}).Info("compressed level")
			return nil
		},
	}
}

func decompressCommand(s *state) cli.Command {
	return cli.Command{
		Name:      "decompress",
		Usage:     "decompress a .bin container into a raw level",
		ArgsUsage: "<src.bin> <dst>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			src, dst := c.Args().Get(0), c.Args().Get(1)

			f := &level.File{Path: src, Options: s.cfg.Options()}
			data, err := f.Read()
			if err != nil {
				return err
			}

			ctx := commandContext(c)
			if want, err := f.Len(); err == nil && want != len(data) {
				log.G(ctx).WithFields(logrus.Fields{
					"src":      src,
					"expected": want,
					"got":      len(data),
				}).Warn("container is truncated, wrote partial level")
			}
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return err
			}

			log.G(ctx).WithFields(logrus.Fields{
				"src":  src,
				"dst":  dst,
				"size": len(data),
			}).Info("decompressed level")
			return nil
		},
	}
}

// Info describes a .bin container.
type Info struct {
	Path               string `json:"path"`
	CompressedSize     int    `json:"compressed_size"`
	UncompressedLength int    `json:"uncompressed_length"`
	ValidMagic         bool   `json:"valid_magic"`
}

func infoCommand(s *state) cli.Command {
	return cli.Command{
		Name:      "info",
		Usage:     "print the header of a .bin container as JSON",
		ArgsUsage: "<src.bin>",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			src := c.Args().First()

			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			n, err := korobin.UncompressedLength(data)
			if err != nil {
				return fmt.Errorf("%s: %w", src, err)
			}
			_, err = korobin.ParseHeader(data)
			if err != nil && !errors.Is(err, korobin.ErrBadMagic) {
				return err
			}

			j, err := json.MarshalIndent(Info{
				Path:               src,
				CompressedSize:     len(data),
				UncompressedLength: n,
				ValidMagic:         err == nil,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(j))
			return nil
		},
	}
}

func packCommand(s *state) cli.Command {
	return cli.Command{
		Name:      "pack",
		Usage:     "compress raw levels into consecutive slots of a ZIP archive",
		ArgsUsage: "<archive.zip> <level>...",
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "start-slot",
				Usage: "slot receiving the first level",
				Value: 1,
			},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			args := c.Args()
			start := c.Int("start-slot")
			files := args.Tail()
			if start < 1 || start+len(files)-1 > level.NumSlots {
				return fmt.Errorf("%w: %d level(s) from slot %d", level.ErrInvalidSlot, len(files), start)
			}

			levels := make([][]byte, level.NumSlots)
			for i, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				levels[start-1+i] = data
			}

			a := s.archive(args.First())
			ctx := commandContext(c)
			if err := a.WriteAll(ctx, levels); err != nil {
				return err
			}

			log.G(ctx).WithFields(logrus.Fields{
				"archive": a.Path,
				"levels":  len(files),
			}).Info("packed levels")
			return nil
		},
	}
}

func unpackCommand(s *state) cli.Command {
	return cli.Command{
		Name:      "unpack",
		Usage:     "decompress archive slots into NN.lvl files",
		ArgsUsage: "<archive.zip> <dir> [slot...]",
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			args := c.Args()
			dir := args.Get(1)

			var slots []int
			for _, arg := range args[2:] {
				slot, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid slot %q: %w", arg, err)
				}
				if slot < 1 || slot > level.NumSlots {
					return fmt.Errorf("%w: %d", level.ErrInvalidSlot, slot)
				}
				slots = append(slots, slot)
			}
			if len(slots) == 0 {
				for slot := 1; slot <= level.NumSlots; slot++ {
					slots = append(slots, slot)
				}
			}

			ctx := commandContext(c)
			levels, err := s.archive(args.First()).ReadAll(ctx)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			written := 0
			for _, slot := range slots {
				data := levels[slot-1]
				if data == nil {
					log.G(ctx).WithField("slot", slot).Debug("slot is empty")
					continue
				}
				path := filepath.Join(dir, fmt.Sprintf("%02d.lvl", slot))
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				written++
			}

			log.G(ctx).WithFields(logrus.Fields{
				"archive": args.First(),
				"dir":     dir,
				"levels":  written,
			}).Info("unpacked levels")
			return nil
		},
	}
}

func configCommand(s *state) cli.Command {
	return cli.Command{
		Name:  "config",
		Usage: "manage configuration",
		Subcommands: []cli.Command{
			{
				Name:  "dump",
				Usage: "dump the effective configuration",
				Action: func(c *cli.Context) error {
					return toml.NewEncoder(c.App.Writer).SetIndentTables(true).Encode(s.cfg)
				},
			},
		},
	}
}

// archive returns the level archive at path configured from s.
func (s *state) archive(path string) *level.Archive {
	return &level.Archive{
		Path:        path,
		Options:     s.cfg.Options(),
		Concurrency: s.cfg.ArchiveConfig.Concurrency,
	}
}
