package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shellforge/shellforge"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGenerateCommand() *cobra.Command {
	var (
		outDir  string
		format  string
		quality int
	)

	cmd := &cobra.Command{
		Use:   "generate <request.yaml>",
		Short: "Generate enclosure parts from a request file",
		Long: `Generate reads a YAML request file, runs the full pipeline and writes
one mesh file per part under a fresh job directory.

Validation problems abort before any geometry work. Per-part failures
and placement warnings are reported but never suppress the remaining
parts.`,
		Example: `  # Generate STL files under ./out/<job-id>/
  shellforge generate request.yaml

  # 3MF packages at higher mesh resolution
  shellforge generate --format 3mf --quality 400 request.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(args[0])
			if err != nil {
				return err
			}

			var meshFormat shellforge.MeshFormat
			if err := meshFormat.UnmarshalText([]byte(format)); err != nil {
				return err
			}

			res, err := shellforge.Generate(*req)
			if err != nil {
				var verrs shellforge.ValidationErrors
				if errors.As(err, &verrs) {
					for _, fe := range verrs {
						log.Error().Str("field", fe.Field).Msg(fe.Msg)
					}
					return fmt.Errorf("%d validation errors", len(verrs))
				}
				return err
			}

			for _, w := range res.Warnings {
				log.Warn().Str("feature", w.Feature).Int("id", w.ID).Msg(w.Msg)
			}
			for _, f := range res.Failures {
				log.Error().
					Str("part", f.Part.String()).
					Str("op", f.Op).
					Err(f.Err).
					Msg("Part generation failed")
			}
			if len(res.Parts) == 0 {
				return errors.New("no parts could be generated")
			}

			d := res.Dimensions
			log.Info().
				Str("inner", fmt.Sprintf("%.1f x %.1f x %.1f", d.Inner.X, d.Inner.Y, d.Inner.Z)).
				Str("outer", fmt.Sprintf("%.1f x %.1f x %.1f", d.Outer.X, d.Outer.Y, d.Outer.Z)).
				Float64("assembled_height", d.Assembled).
				Msg("Enclosure dimensions (mm)")

			jobDir := filepath.Join(outDir, uuid.NewString())
			paths, err := shellforge.ExportFiles(jobDir, res, meshFormat, quality)
			if err != nil {
				return err
			}
			for _, p := range paths {
				log.Info().Str("file", p).Msg("Wrote part")
			}
			fmt.Println(jobDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory for job folders")
	cmd.Flags().StringVar(&format, "format", "stl", "mesh format: stl, 3mf or both")
	cmd.Flags().IntVar(&quality, "quality", shellforge.DefaultMeshCells, "mesh cells along the longest axis")

	return cmd
}

// loadRequest parses a YAML request file.
func loadRequest(path string) (*shellforge.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req shellforge.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &req, nil
}
