// Package rpc exposes the simulator as the gRPC service atbat.v1.Simulator.
//
// Messages are google.protobuf.Struct values carrying the same JSON shapes
// as the HTTP API, so the service needs no generated code. Seeds travel as
// decimal strings in responses because Struct numbers are doubles.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/atbat-sim/internal/config"
	"github.com/xtding233/atbat-sim/internal/roster"
	"github.com/xtding233/atbat-sim/internal/service"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "atbat.v1.Simulator"

// Simulator is the part of service.Simulator the gRPC server uses.
type Simulator interface {
	Simulate(ctx context.Context, req service.Request) (service.Report, error)
	AtBat(ctx context.Context, req service.Request) (service.AtBatResult, error)
	Players(role roster.Role, year int) ([]roster.Player, error)
	Years() []int
}

// Server implements SimulatorServer on top of a Simulator.
type Server struct {
	sim Simulator
}

func NewServer(sim Simulator) *Server {
	return &Server{sim: sim}
}

type matchupRequest struct {
	BatterID   string   `json:"batter_id"`
	PitcherID  string   `json:"pitcher_id"`
	SampleSize *int     `json:"sample_size"`
	ParkFactor *float64 `json:"park_factor"`
	Ballpark   string   `json:"ballpark"`
	History    bool     `json:"history"`
}

type playersRequest struct {
	Role string `json:"role"`
	Year int    `json:"year"`
}

// Simulate runs a matchup simulation.
func (s *Server) Simulate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeMatchup(in)
	if err != nil {
		return nil, err
	}
	rep, err := s.sim.Simulate(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(rep, rep.Seed)
}

// AtBat draws one plate appearance.
func (s *Server) AtBat(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeMatchup(in)
	if err != nil {
		return nil, err
	}
	res, err := s.sim.AtBat(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(res, res.Seed)
}

// ListPlayers lists one side of the roster for a season.
func (s *Server) ListPlayers(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req playersRequest
	if err := decodeStruct(in, &req, nil); err != nil {
		return nil, err
	}
	role, ok := roster.ParseRole(req.Role)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, service.ErrInvalidRole.Error())
	}
	players, err := s.sim.Players(role, req.Year)
	if err != nil {
		return nil, toStatus(err)
	}
	if players == nil {
		players = []roster.Player{}
	}
	v, err := toValue(map[string]any{
		"role":    role,
		"year":    req.Year,
		"years":   s.sim.Years(),
		"players": players,
		"count":   len(players),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode players: %v", err)
	}
	return v, nil
}

func decodeMatchup(in *structpb.Struct) (service.Request, error) {
	var req matchupRequest
	var seed *uint64
	err := decodeStruct(in, &req, func(m map[string]any) error {
		v, ok := m["seed"]
		if !ok {
			return nil
		}
		delete(m, "seed")
		u, err := parseSeed(v)
		if err != nil {
			return err
		}
		seed = &u
		return nil
	})
	if err != nil {
		return service.Request{}, err
	}
	return service.Request{
		BatterID:  req.BatterID,
		PitcherID: req.PitcherID,
		Overrides: config.Overrides{
			SampleSize: req.SampleSize,
			ParkFactor: req.ParkFactor,
			Ballpark:   req.Ballpark,
		},
		Seed:    seed,
		History: req.History,
	}, nil
}

// decodeStruct maps a Struct onto a request type through JSON. pre may
// consume fields that need special handling before decoding.
func decodeStruct(in *structpb.Struct, out any, pre func(map[string]any) error) error {
	m := in.AsMap()
	if pre != nil {
		if err := pre(m); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

// parseSeed accepts a whole number or a decimal string.
func parseSeed(v any) (uint64, error) {
	switch s := v.(type) {
	case string:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seed %q", s)
		}
		return u, nil
	case float64:
		if s < 0 || s >= 1<<64 || s != math.Trunc(s) {
			return 0, fmt.Errorf("invalid seed %v", s)
		}
		return uint64(s), nil
	}
	return 0, fmt.Errorf("invalid seed type %T", v)
}

func encode(v any, seed uint64) (*structpb.Struct, error) {
	out, err := toValue(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out.Fields["seed"] = structpb.NewStringValue(strconv.FormatUint(seed, 10))
	return out, nil
}

func toValue(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func toStatus(err error) error {
	switch {
	case service.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case service.IsInvalid(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Errorf(codes.Internal, "simulation failed: %v", err)
}

// SimulatorServer is the server API for atbat.v1.Simulator.
type SimulatorServer interface {
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AtBat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPlayers(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unary(method string, call func(SimulatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	full := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimulatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SimulatorServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes atbat.v1.Simulator for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Simulate", Handler: unary("Simulate", SimulatorServer.Simulate)},
		{MethodName: "AtBat", Handler: unary("AtBat", SimulatorServer.AtBat)},
		{MethodName: "ListPlayers", Handler: unary("ListPlayers", SimulatorServer.ListPlayers)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSimulatorServer(s grpc.ServiceRegistrar, srv SimulatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// SimulatorClient calls atbat.v1.Simulator.
type SimulatorClient struct {
	cc grpc.ClientConnInterface
}

func NewSimulatorClient(cc grpc.ClientConnInterface) *SimulatorClient {
	return &SimulatorClient{cc: cc}
}

func (c *SimulatorClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SimulatorClient) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Simulate", in, opts)
}

func (c *SimulatorClient) AtBat(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "AtBat", in, opts)
}

func (c *SimulatorClient) ListPlayers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListPlayers", in, opts)
}
