package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names of the ledger.v1.LedgerService RPCs.
const (
	RegisterPersonMethod = "/ledger.v1.LedgerService/RegisterPerson"
	OpenAccountMethod    = "/ledger.v1.LedgerService/OpenAccount"
	ListAccountsMethod   = "/ledger.v1.LedgerService/ListAccounts"
	DepositMethod        = "/ledger.v1.LedgerService/Deposit"
	WithdrawMethod       = "/ledger.v1.LedgerService/Withdraw"
	GetStatementMethod   = "/ledger.v1.LedgerService/GetStatement"
)

// LedgerServiceServer is the server API for the ledger service.
// Requests and responses are google.protobuf.Struct messages.
type LedgerServiceServer interface {
	RegisterPerson(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OpenAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Deposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStatement(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LedgerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LedgerServiceDesc is the grpc.ServiceDesc for the ledger service
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: "ledger.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterPerson", Handler: unaryHandler(RegisterPersonMethod, LedgerServiceServer.RegisterPerson)},
		{MethodName: "OpenAccount", Handler: unaryHandler(OpenAccountMethod, LedgerServiceServer.OpenAccount)},
		{MethodName: "ListAccounts", Handler: unaryHandler(ListAccountsMethod, LedgerServiceServer.ListAccounts)},
		{MethodName: "Deposit", Handler: unaryHandler(DepositMethod, LedgerServiceServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler(WithdrawMethod, LedgerServiceServer.Withdraw)},
		{MethodName: "GetStatement", Handler: unaryHandler(GetStatementMethod, LedgerServiceServer.GetStatement)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

// RegisterLedgerServiceServer registers the ledger service on a gRPC server
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

// LedgerClient is the client API for the ledger service
type LedgerClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerClient creates a client over an established connection
func NewLedgerClient(cc grpc.ClientConnInterface) *LedgerClient {
	return &LedgerClient{cc: cc}
}

func (c *LedgerClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerClient) RegisterPerson(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterPersonMethod, in, opts...)
}

func (c *LedgerClient) OpenAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, OpenAccountMethod, in, opts...)
}

func (c *LedgerClient) ListAccounts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListAccountsMethod, in, opts...)
}

func (c *LedgerClient) Deposit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DepositMethod, in, opts...)
}

func (c *LedgerClient) Withdraw(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WithdrawMethod, in, opts...)
}

func (c *LedgerClient) GetStatement(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetStatementMethod, in, opts...)
}
