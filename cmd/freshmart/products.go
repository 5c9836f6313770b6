package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/example/freshmart/pkg/catalog"
	"github.com/example/freshmart/pkg/discovery"
	freshgrpc "github.com/example/freshmart/pkg/grpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var productsFlags struct {
	addr     string
	category string
	search   string
	page     int
	perPage  int
	timeout  time.Duration
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products from a running server over gRPC",
	RunE:  runProducts,
}

func init() {
	f := productsCmd.Flags()
	f.StringVar(&productsFlags.addr, "addr", "", "gRPC address; defaults to etcd lookup, then localhost and the configured port")
	f.StringVar(&productsFlags.category, "category", "", "exact category name")
	f.StringVar(&productsFlags.search, "search", "", "substring of the product name")
	f.IntVar(&productsFlags.page, "page", 1, "page number")
	f.IntVar(&productsFlags.perPage, "per-page", 0, "page size (server default when 0)")
	f.DurationVar(&productsFlags.timeout, "timeout", 5*time.Second, "call timeout")
}

func runProducts(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	target := productsFlags.addr
	if target == "" {
		fallback := net.JoinHostPort("localhost", strconv.Itoa(cfg.GRPC.Port))
		var sd *discovery.ServiceDiscovery
		if cfg.Etcd.Enabled {
			if sd, err = discovery.NewServiceDiscovery(&cfg.Etcd, logger); err != nil {
				logger.Warn("Failed to connect to etcd", zap.Error(err))
			} else {
				defer sd.Close()
			}
		}
		target = freshgrpc.ResolveTarget(cmd.Context(), sd, cfg.Server.Name, fallback, logger)
	}

	client, err := freshgrpc.NewCatalogClient(target)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), productsFlags.timeout)
	defer cancel()

	page, err := client.ListProducts(ctx, catalog.Query{
		Category: productsFlags.category,
		Search:   productsFlags.search,
		Page:     productsFlags.page,
		PerPage:  productsFlags.perPage,
	})
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	out, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
