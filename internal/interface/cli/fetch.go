package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/skyline-mro/wpaudit/internal/gateway/storage"
)

func newFetchCmd() *cobra.Command {
	var bucket, prefix, region string
	var fromDir, key, outDir string
	var list bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch maintenance exports from the configured store",
		Long: "Download log exports from the configured S3 bucket, or from a\n" +
			"local directory when --from-dir is given. Without --key the most\n" +
			"recent export is fetched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := buildGateway(cmd.Context(), bucket, prefix, region, fromDir)
			if err != nil {
				return err
			}

			if list {
				exports, err := gw.ListExports(cmd.Context())
				if err != nil {
					return err
				}
				for _, e := range exports {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
						e.Key, e.Size, e.LastModified.Format("2006-01-02 15:04:05"))
				}
				if len(exports) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no exports found")
				}
				return nil
			}

			var data []byte
			if key == "" {
				key, data, err = storage.FetchLatest(cmd.Context(), gw, ".xlsx", ".csv")
			} else {
				data, err = gw.FetchExport(cmd.Context(), key)
			}
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir, err = dataDir()
				if err != nil {
					return err
				}
			}
			dst := filepath.Join(outDir, filepath.Base(key))
			if err := afero.WriteFile(afero.NewOsFs(), dst, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetched %s (%d bytes) to %s\n", key, len(data), dst)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default: configured bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "S3 key prefix (default: configured prefix)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region override")
	cmd.Flags().StringVar(&fromDir, "from-dir", "", "fetch from a local directory instead of S3")
	cmd.Flags().StringVar(&key, "key", "", "fetch a specific export by key")
	cmd.Flags().StringVar(&outDir, "out", "", "destination directory (default: data dir)")
	cmd.Flags().BoolVar(&list, "list", false, "list available exports instead of fetching")

	return cmd
}

func buildGateway(ctx context.Context, bucket, prefix, region, fromDir string) (storage.Gateway, error) {
	if fromDir != "" {
		return storage.NewLocalGateway(afero.NewOsFs(), fromDir), nil
	}
	if bucket == "" && globalConfig != nil {
		bucket = globalConfig.Bucket()
	}
	if prefix == "" && globalConfig != nil {
		prefix = globalConfig.Prefix()
	}
	if region == "" && globalConfig != nil {
		region = globalConfig.Region()
	}
	if bucket == "" {
		return nil, fmt.Errorf("no bucket configured (set bucket in setting.json or pass --bucket or --from-dir)")
	}
	return storage.NewS3Gateway(ctx, storage.S3Config{Bucket: bucket, Prefix: prefix, Region: region})
}
