package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"
)

// GameServiceServer is the server API for the GameService service.
type GameServiceServer interface {
	// NewGame starts a single player game and returns its first snapshot.
	NewGame(context.Context, *NewGameRequest) (*Snapshot, error)
	// Command runs a player command or a tick on a game.
	Command(context.Context, *CommandRequest) (*Snapshot, error)
	GetSnapshot(context.Context, *GameRequest) (*Snapshot, error)
	// EndGame forgets the game and returns its last snapshot.
	EndGame(context.Context, *GameRequest) (*Snapshot, error)
	// SubmitScore records the result of a finished game on the scoreboard.
	SubmitScore(context.Context, *SubmitScoreRequest) (*ScoreEntry, error)
	Scores(context.Context, *ScoresRequest) (*ScoresResponse, error)
}

// UnimplementedGameServiceServer can be embedded to have forward compatible implementations.
type UnimplementedGameServiceServer struct{}

func (UnimplementedGameServiceServer) NewGame(context.Context, *NewGameRequest) (*Snapshot, error) {
	return nil, status.Error(codes.Unimplemented, "method NewGame not implemented")
}

func (UnimplementedGameServiceServer) Command(context.Context, *CommandRequest) (*Snapshot, error) {
	return nil, status.Error(codes.Unimplemented, "method Command not implemented")
}

func (UnimplementedGameServiceServer) GetSnapshot(context.Context, *GameRequest) (*Snapshot, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSnapshot not implemented")
}

func (UnimplementedGameServiceServer) EndGame(context.Context, *GameRequest) (*Snapshot, error) {
	return nil, status.Error(codes.Unimplemented, "method EndGame not implemented")
}

func (UnimplementedGameServiceServer) SubmitScore(context.Context, *SubmitScoreRequest) (*ScoreEntry, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitScore not implemented")
}

func (UnimplementedGameServiceServer) Scores(context.Context, *ScoresRequest) (*ScoresResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Scores not implemented")
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameService_ServiceDesc, srv)
}

// GameService_ServiceDesc is the grpc.ServiceDesc for the GameService service.
var GameService_ServiceDesc = grpc.ServiceDesc{ //nolint:revive,stylecheck
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("NewGame", GameServiceServer.NewGame),
		unary("Command", GameServiceServer.Command),
		unary("GetSnapshot", GameServiceServer.GetSnapshot),
		unary("EndGame", GameServiceServer.EndGame),
		unary("SubmitScore", GameServiceServer.SubmitScore),
		unary("Scores", GameServiceServer.Scores),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blockfall.proto",
}

// unary builds the handler of a unary method: the request is decoded into
// a dynamic message, copied into its struct and handed to call.
func unary[Req any, PReq interface {
	*Req
	wire
}, Resp wire](name string, call func(GameServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := PReq(new(Req))
			in := dynamicpb.NewMessage(req.desc())
			if err := dec(in); err != nil {
				return nil, err
			}
			req.load(in)

			handler := func(ctx context.Context, r any) (any, error) {
				resp, err := call(srv.(GameServiceServer), ctx, r.(PReq))
				if err != nil {
					return nil, err
				}
				return encode(resp), nil
			}
			if interceptor == nil {
				return handler(ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, req, info, handler)
		},
	}
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

// GameServiceClient is the client API for the GameService service.
type GameServiceClient interface {
	NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*Snapshot, error)
	Command(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*Snapshot, error)
	GetSnapshot(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*Snapshot, error)
	EndGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*Snapshot, error)
	SubmitScore(ctx context.Context, in *SubmitScoreRequest, opts ...grpc.CallOption) (*ScoreEntry, error)
	Scores(ctx context.Context, in *ScoresRequest, opts ...grpc.CallOption) (*ScoresResponse, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc: cc}
}

func (c *gameServiceClient) NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	out := new(Snapshot)
	if err := c.invoke(ctx, "NewGame", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) Command(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	out := new(Snapshot)
	if err := c.invoke(ctx, "Command", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) GetSnapshot(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	out := new(Snapshot)
	if err := c.invoke(ctx, "GetSnapshot", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) EndGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*Snapshot, error) {
	out := new(Snapshot)
	if err := c.invoke(ctx, "EndGame", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) SubmitScore(ctx context.Context, in *SubmitScoreRequest, opts ...grpc.CallOption) (*ScoreEntry, error) {
	out := new(ScoreEntry)
	if err := c.invoke(ctx, "SubmitScore", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) Scores(ctx context.Context, in *ScoresRequest, opts ...grpc.CallOption) (*ScoresResponse, error) {
	out := new(ScoresResponse)
	if err := c.invoke(ctx, "Scores", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) invoke(ctx context.Context, method string, in, out wire, opts []grpc.CallOption) error {
	reply := dynamicpb.NewMessage(out.desc())
	if err := c.cc.Invoke(ctx, fullMethod(method), encode(in), reply, opts...); err != nil {
		return err
	}
	out.load(reply)
	return nil
}
