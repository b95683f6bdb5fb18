package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "habits.analytics.v1.HabitAnalyticsService"

// AnalyticsServer is the server API for the analytics service. Requests
// and responses are google.protobuf.Struct documents.
type AnalyticsServer interface {
	GetHabitAnalytics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetHabitInsights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetOverallInsights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetCalendarMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv AnalyticsServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AnalyticsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FullMethod returns the route of a method, e.g. for conn.Invoke
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var analyticsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetHabitAnalytics",
			Handler: unaryHandler("GetHabitAnalytics", func(srv AnalyticsServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetHabitAnalytics(ctx, req)
			}),
		},
		{
			MethodName: "GetHabitInsights",
			Handler: unaryHandler("GetHabitInsights", func(srv AnalyticsServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetHabitInsights(ctx, req)
			}),
		},
		{
			MethodName: "GetOverallInsights",
			Handler: unaryHandler("GetOverallInsights", func(srv AnalyticsServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetOverallInsights(ctx, req)
			}),
		},
		{
			MethodName: "GetCalendarMonth",
			Handler: unaryHandler("GetCalendarMonth", func(srv AnalyticsServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetCalendarMonth(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "habits/analytics/v1/analytics.proto",
}

// RegisterAnalyticsServer registers srv on s
func RegisterAnalyticsServer(s grpc.ServiceRegistrar, srv AnalyticsServer) {
	s.RegisterService(&analyticsServiceDesc, srv)
}
