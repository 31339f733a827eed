package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/export"
)

const (
	ServiceName     = "rankings.v1.RankingsService"
	GetReportMethod = "/" + ServiceName + "/GetReport"
)

// RankingsServer is the server API of rankings.v1.RankingsService. Requests and
// responses are google.protobuf.Struct so no generated code is needed.
type RankingsServer interface {
	GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RankingsServiceDesc describes rankings.v1.RankingsService for grpc.Server.RegisterService.
var RankingsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RankingsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetReport", Handler: getReportHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rankings/v1/rankings.proto",
}

func getReportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RankingsServer).GetReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetReportMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RankingsServer).GetReport(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// GetReport calls rankings.v1.RankingsService/GetReport on cc.
func GetReport(ctx context.Context, cc grpc.ClientConnInterface, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, GetReportMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BuildFunc produces a fresh report.
type BuildFunc func(ctx context.Context) (*entity.Report, error)

// RankingsService serves the most recent report, building it on first use or
// when the request carries "refresh": true.
type RankingsService struct {
	build  BuildFunc
	logger *slog.Logger

	mu     sync.Mutex
	report *entity.Report
}

func NewRankingsService(build BuildFunc, logger *slog.Logger) *RankingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingsService{build: build, logger: logger}
}

func (s *RankingsService) GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	refresh := false
	if v, ok := req.GetFields()["refresh"]; ok {
		b, isBool := v.GetKind().(*structpb.Value_BoolValue)
		if !isBool {
			return nil, common.InvalidArgumentError("refresh must be a boolean")
		}
		refresh = b.BoolValue
	}

	report, err := s.current(ctx, refresh)
	if err != nil {
		s.logger.Warn("get report failed", "error", err)
		return nil, common.ToStatus(err)
	}
	out, err := reportStruct(report)
	if err != nil {
		s.logger.Error("encode report failed", "error", err)
		return nil, common.InternalError("encode report failed")
	}
	return out, nil
}

// Refresh rebuilds the cached report.
func (s *RankingsService) Refresh(ctx context.Context) error {
	_, err := s.current(ctx, true)
	return err
}

// Set replaces the cached report.
func (s *RankingsService) Set(report *entity.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = report
}

func (s *RankingsService) current(ctx context.Context, refresh bool) (*entity.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report != nil && !refresh {
		return s.report, nil
	}
	start := time.Now()
	report, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.report = report
	s.logger.Info("report rebuilt", "dates", len(report.Dates), "elapsed_ms", time.Since(start).Milliseconds())
	return report, nil
}

// reportStruct converts the report through its validated JSON form.
func reportStruct(report *entity.Report) (*structpb.Struct, error) {
	b, err := export.RenderJSON(report)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}
