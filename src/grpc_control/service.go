package grpc_control

import (
	"context"

	"fleet-observer/src/config"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// -----------------------------------------------------------------------------

// TrackerView is the read surface the control service needs from the
// vessel tracker.
type TrackerView interface {
	Mode() string
	VesselCount() int
	TrackerStats() models.MTrackerStats
}

// ControlService exposes an operator control plane over gRPC. Requests
// are empty and responses are open structs, so the service needs no
// dedicated proto schema.
type ControlService struct {
	Config  *config.Config
	Logger  *logger.Logger
	Tracker TrackerView
	Routes  []models.MRoute
}

// -----------------------------------------------------------------------------

func NewControlService(cfg *config.Config, log *logger.Logger, tr TrackerView, routes []models.MRoute) *ControlService {
	return &ControlService{
		Config:  cfg,
		Logger:  log,
		Tracker: tr,
		Routes:  routes,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.Tracker == nil {
		return nil, status.Error(codes.Unavailable, "tracker not started")
	}

	stats := s.Tracker.TrackerStats()

	byType := make(map[string]interface{}, len(stats.ByType))
	for k, v := range stats.ByType {
		byType[k] = v
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"name":          s.Config.Name,
		"mode":          stats.Mode,
		"total_vessels": stats.TotalVessels,
		"by_type":       byType,
		"routes_active": stats.RoutesActive,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build status: %v", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) ListRoutes(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	routes := make([]interface{}, 0, len(s.Routes))
	for _, r := range s.Routes {
		waypoints := make([]interface{}, 0, len(r.Waypoints))
		for _, wp := range r.Waypoints {
			waypoints = append(waypoints, []interface{}{wp.Lat, wp.Lon})
		}
		routes = append(routes, map[string]interface{}{
			"name":      r.Name,
			"waypoints": waypoints,
		})
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"count":  len(s.Routes),
		"routes": routes,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build route list: %v", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Service Registration
// -----------------------------------------------------------------------------

// The service descriptor is written by hand against the well-known
// Empty and Struct messages, so no generated stubs are needed.

func getStatusHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*ControlService).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fleetobserver.Control/GetStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*ControlService).GetStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listRoutesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*ControlService).ListRoutes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/fleetobserver.Control/ListRoutes",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*ControlService).ListRoutes(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var controlServiceDesc = grpc.ServiceDesc{
	ServiceName: "fleetobserver.Control",
	HandlerType: (*interface{})(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: getStatusHandler},
		{MethodName: "ListRoutes", Handler: listRoutesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fleetobserver/control",
}

// RegisterControlService attaches the control service to a gRPC server.
func RegisterControlService(s *grpc.Server, svc *ControlService) {
	s.RegisterService(&controlServiceDesc, svc)
}
