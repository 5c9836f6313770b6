package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/example/freshmart/pkg/catalog"
	"github.com/example/freshmart/pkg/config"
	"github.com/example/freshmart/pkg/repository"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "freshmart.catalog.v1.Catalog"

// CatalogHandler is the server side of the catalog service. Messages are
// protobuf well-known types carrying the same JSON shapes as the REST API.
type CatalogHandler interface {
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetProduct(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error)
	ListCategories(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogHandler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "GetProduct", Handler: getProductHandler},
		{MethodName: "ListCategories", Handler: listCategoriesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "freshmart/catalog/v1/catalog.proto",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, h CatalogHandler) {
	s.RegisterService(&catalogServiceDesc, h)
}

func listProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogHandler).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListProducts"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogHandler).ListProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getProductHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogHandler).GetProduct(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/GetProduct"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogHandler).GetProduct(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func listCategoriesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogHandler).ListCategories(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/ListCategories"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogHandler).ListCategories(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServer serves the catalog read API.
type CatalogServer struct {
	catalog *catalog.Service
	logger  *zap.Logger
}

func NewCatalogServer(svc *catalog.Service, logger *zap.Logger) *CatalogServer {
	return &CatalogServer{catalog: svc, logger: logger}
}

func (s *CatalogServer) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	q := catalog.Query{
		Category: fields["category"].GetStringValue(),
		Search:   fields["search"].GetStringValue(),
		Page:     int(fields["page"].GetNumberValue()),
		PerPage:  int(fields["per_page"].GetNumberValue()),
	}

	page, err := s.catalog.ListProducts(ctx, q)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(page)
}

func (s *CatalogServer) GetProduct(ctx context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	if req.GetValue() == 0 {
		return nil, status.Error(codes.InvalidArgument, "product id required")
	}

	product, err := s.catalog.GetProduct(ctx, uint(req.GetValue()))
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(product)
}

func (s *CatalogServer) ListCategories(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}

	var items []interface{}
	if err := roundTrip(categories, &items); err != nil {
		return nil, status.Error(codes.Internal, "failed to encode categories")
	}
	list, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode categories")
	}
	return list, nil
}

func (s *CatalogServer) toStatus(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, repository.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error("Catalog call failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// roundTrip re-decodes v's JSON form into dest, giving the generic
// map/slice shapes structpb accepts.
func roundTrip(v, dest interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	var m map[string]interface{}
	if err := roundTrip(v, &m); err != nil {
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return out, nil
}

// Server hosts the catalog service together with the standard health and
// reflection services.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	addr   string
	logger *zap.Logger
}

func NewServer(cfg config.GRPCConfig, svc *catalog.Service, logger *zap.Logger) *Server {
	logger = logger.Named("grpc")
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))

	RegisterCatalogServer(srv, NewCatalogServer(svc, logger))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return &Server{srv: srv, health: hs, addr: cfg.Addr(), logger: logger}
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Catalog gRPC service started", zap.String("address", lis.Addr().String()))
	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks the service not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("gRPC request",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)),
		)
		return resp, err
	}
}
