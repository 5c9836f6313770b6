package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/example/freshmart/pkg/catalog"
	"github.com/example/freshmart/pkg/discovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ResolveTarget looks serviceName up in etcd and falls back to fallback
// when discovery is off or finds nothing.
func ResolveTarget(ctx context.Context, disc *discovery.ServiceDiscovery, serviceName, fallback string, logger *zap.Logger) string {
	if disc == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	instances, err := disc.Discover(ctx, serviceName)
	if err != nil || len(instances) == 0 {
		logger.Info("Using default address for catalog service", zap.String("address", fallback), zap.Error(err))
		return fallback
	}
	target := instances[0].Addr()
	logger.Info("Discovered catalog service", zap.String("address", target))
	return target
}

// CatalogClient calls the catalog gRPC service.
type CatalogClient struct {
	conn *grpc.ClientConn
}

// NewCatalogClient connects lazily to target; plaintext unless opts say
// otherwise.
func NewCatalogClient(target string, opts ...grpc.DialOption) (*CatalogClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return &CatalogClient{conn: conn}, nil
}

func (c *CatalogClient) ListProducts(ctx context.Context, q catalog.Query) (*catalog.ProductPage, error) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"category": q.Category,
		"search":   q.Search,
		"page":     q.Page,
		"per_page": q.PerPage,
	})
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/ListProducts", in, out); err != nil {
		return nil, err
	}

	var page catalog.ProductPage
	if err := roundTrip(out.AsMap(), &page); err != nil {
		return nil, fmt.Errorf("failed to decode product page: %w", err)
	}
	return &page, nil
}

func (c *CatalogClient) GetProduct(ctx context.Context, id uint) (*catalog.ProductView, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/GetProduct", wrapperspb.UInt64(uint64(id)), out); err != nil {
		return nil, err
	}

	var product catalog.ProductView
	if err := roundTrip(out.AsMap(), &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

func (c *CatalogClient) ListCategories(ctx context.Context) ([]catalog.CategoryView, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/ListCategories", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}

	categories := []catalog.CategoryView{}
	if err := roundTrip(out.AsSlice(), &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (c *CatalogClient) Close() error {
	return c.conn.Close()
}
