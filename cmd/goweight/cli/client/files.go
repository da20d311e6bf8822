package client

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mwantia/goweight/pkg/db/store"
	"github.com/mwantia/goweight/pkg/fingerprint"
	"github.com/spf13/cobra"

	config "github.com/mwantia/goweight/internal/config/server"
)

func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect tracked import files",
		Long:  "Inspect the file metadata recorded by previous imports and compare it with the files on disk.",
	}

	cmd.AddCommand(NewFilesListCommand())
	cmd.AddCommand(NewFilesHashCommand())

	return cmd
}

func NewFilesListCommand() *cobra.Command {
	var longFormat bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tracked files",
		Long:  "List every file recorded by an import together with its content type and last import time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, s store.MetadataStore) error {
				files, err := s.ListFileMetadata(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, f := range files {
					contentType := ""
					if f.ImportedFile != nil {
						contentType = f.ImportedFile.ContentType
					}

					hash := f.Hash
					if !longFormat && len(hash) > 12 {
						hash = hash[:12]
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Filename, contentType, hash,
						f.LastModified.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVarP(&longFormat, "long", "l", false, "Display full hashes")

	return cmd
}

func NewFilesHashCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <path>",
		Short: "Compare a file with its recorded hash",
		Long:  "Prints the current content hash of a file and whether it differs from the hash recorded by the last import.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := fingerprint.Hash(args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, s store.MetadataStore) error {
				metadata, err := s.GetFileMetadata(ctx, args[0])
				if err != nil {
					return err
				}

				state := "untracked"
				if metadata != nil {
					state = "changed"
					if metadata.Hash == hash {
						state = "unchanged"
					}
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", hash, args[0], state)
				return nil
			})
		},
	}

	return cmd
}

func withStore(cmd *cobra.Command, fn func(context.Context, store.MetadataStore) error) error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	s, err := store.NewMetadataStore(cfg.Database)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		return err
	}
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	return fn(ctx, s)
}
