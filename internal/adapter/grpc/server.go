package grpc

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Eduardo-JSF/desafio-03/internal/domain"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/onboarding"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/statement"
	"github.com/Eduardo-JSF/desafio-03/internal/usecase/teller"
)

const birthDateLayout = "2006-01-02"

// Server implements the LedgerService gRPC server
type Server struct {
	OnboardingService *onboarding.OnboardingService
	TellerService     *teller.TellerService
	StatementService  *statement.StatementService
	Tokens            *TokenIssuer
}

// NewServer creates a new gRPC server instance
func NewServer(
	onboardingService *onboarding.OnboardingService,
	tellerService *teller.TellerService,
	statementService *statement.StatementService,
	tokens *TokenIssuer,
) *Server {
	return &Server{
		OnboardingService: onboardingService,
		TellerService:     tellerService,
		StatementService:  statementService,
		Tokens:            tokens,
	}
}

// RegisterPerson handles the RegisterPerson RPC
// Request: name, tax_id, address, birth_date (YYYY-MM-DD, optional)
// Response: client_id, token
func (s *Server) RegisterPerson(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var birthDate time.Time
	if raw := stringField(req, "birth_date"); raw != "" {
		parsed, err := time.Parse(birthDateLayout, raw)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid birth_date format: %v", err)
		}
		birthDate = parsed
	}

	client, err := s.OnboardingService.RegisterPerson(ctx, onboarding.RegisterPersonInput{
		Name:      stringField(req, "name"),
		BirthDate: birthDate,
		TaxID:     stringField(req, "tax_id"),
		Address:   stringField(req, "address"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	token, err := s.Tokens.Issue(client.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{
		"client_id": client.ID.String(),
		"token":     token,
	})
}

// OpenAccount handles the OpenAccount RPC
// Request: kind (BASIC|CHECKING), branch, overdraft_limit, max_withdrawals (all optional)
func (s *Server) OpenAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	input := onboarding.OpenAccountInput{
		ClientID: clientID,
		Kind:     domain.AccountKind(strings.ToUpper(stringField(req, "kind"))),
		Branch:   stringField(req, "branch"),
	}

	// Partial limits are completed from the configured defaults
	rawOverdraft := stringField(req, "overdraft_limit")
	maxValue, hasMax := req.GetFields()["max_withdrawals"]
	if rawOverdraft != "" || hasMax {
		limits := s.OnboardingService.DefaultLimits
		if rawOverdraft != "" {
			overdraft, err := decimal.NewFromString(rawOverdraft)
			if err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "invalid overdraft_limit format: %v", err)
			}
			limits.OverdraftLimit = overdraft
		}
		if hasMax {
			n, err := wholeNumber(maxValue)
			if err != nil {
				return nil, err
			}
			limits.MaxWithdrawals = n
		}
		input.Limits = &limits
	}

	account, err := s.OnboardingService.OpenAccount(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(accountToMap(account))
}

// ListAccounts handles the ListAccounts RPC
func (s *Server) ListAccounts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.OnboardingService.ListAccounts(ctx, clientID)
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]interface{}, 0, len(accounts))
	for _, account := range accounts {
		list = append(list, accountToMap(account))
	}

	return newStruct(map[string]interface{}{
		"accounts": list,
	})
}

// Deposit handles the Deposit RPC
// Request: account_number, amount
func (s *Server) Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := transactionInput(ctx, req)
	if err != nil {
		return nil, err
	}

	receipt, err := s.TellerService.Deposit(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(receiptToMap(receipt))
}

// Withdraw handles the Withdraw RPC
// Request: account_number, amount
func (s *Server) Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := transactionInput(ctx, req)
	if err != nil {
		return nil, err
	}

	receipt, err := s.TellerService.Withdraw(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(receiptToMap(receipt))
}

// GetStatement handles the GetStatement RPC
// Request: account_number
func (s *Server) GetStatement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	clientID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	number, err := parseAccountNumber(stringField(req, "account_number"))
	if err != nil {
		return nil, err
	}

	st, err := s.StatementService.GetStatement(ctx, statement.StatementInput{
		ClientID:      clientID,
		AccountNumber: number,
	})
	if err != nil {
		return nil, mapError(err)
	}

	records := make([]interface{}, 0, len(st.Records))
	for _, record := range st.Records {
		records = append(records, map[string]interface{}{
			"kind":      string(record.Kind),
			"amount":    record.Amount.String(),
			"timestamp": record.Timestamp(),
		})
	}

	out := map[string]interface{}{
		"account_number":    formatAccountNumber(st.AccountNumber),
		"branch":            st.Branch,
		"kind":              string(st.Kind),
		"holder":            st.Holder,
		"balance":           st.Balance.String(),
		"total_deposits":    st.TotalDeposits.String(),
		"total_withdrawals": st.TotalWithdrawals.String(),
		"records":           records,
	}
	if st.Kind == domain.AccountKindChecking {
		out["overdraft_limit"] = st.OverdraftLimit.String()
		out["withdrawals_used"] = st.WithdrawalsUsed
		out["withdrawals_remaining"] = st.WithdrawalsRemaining
		out["description"] = st.Description
	}

	return newStruct(out)
}

// transactionInput builds the teller input from the caller and the request
func transactionInput(ctx context.Context, req *structpb.Struct) (teller.TransactionInput, error) {
	clientID, err := callerID(ctx)
	if err != nil {
		return teller.TransactionInput{}, err
	}

	number, err := parseAccountNumber(stringField(req, "account_number"))
	if err != nil {
		return teller.TransactionInput{}, err
	}

	// Parse amount from string to decimal
	amount, err := decimal.NewFromString(stringField(req, "amount"))
	if err != nil {
		return teller.TransactionInput{}, status.Errorf(codes.InvalidArgument, "invalid amount format: %v", err)
	}

	return teller.TransactionInput{
		ClientID:      clientID,
		AccountNumber: number,
		Amount:        amount,
	}, nil
}

// callerID returns the client ID the AuthInterceptor stored in the context
func callerID(ctx context.Context) (uuid.UUID, error) {
	clientID, ok := ClientIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing client identity")
	}
	return clientID, nil
}

func parseAccountNumber(raw string) (int64, error) {
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "invalid account_number format: %v", err)
	}
	return id.Int64(), nil
}

func formatAccountNumber(number int64) string {
	return snowflake.ID(number).String()
}

// wholeNumber accepts only a finite, integral JSON number
func wholeNumber(v *structpb.Value) (int, error) {
	kind, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "invalid max_withdrawals: must be a number")
	}

	n := kind.NumberValue
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "invalid max_withdrawals: %v", n)
	}
	return int(n), nil
}

func stringField(s *structpb.Struct, key string) string {
	return strings.TrimSpace(s.GetFields()[key].GetStringValue())
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return out, nil
}

// accountToMap converts a domain account to its wire representation
func accountToMap(account domain.Account) map[string]interface{} {
	out := map[string]interface{}{
		"account_number": formatAccountNumber(account.Number()),
		"branch":         account.Branch(),
		"kind":           string(account.Kind()),
		"balance":        account.Balance().String(),
	}
	if checking, ok := account.(*domain.CheckingAccount); ok {
		out["overdraft_limit"] = checking.Limits().OverdraftLimit.String()
		out["max_withdrawals"] = checking.Limits().MaxWithdrawals
	}
	return out
}

func receiptToMap(receipt *teller.Receipt) map[string]interface{} {
	return map[string]interface{}{
		"account_number": formatAccountNumber(receipt.AccountNumber),
		"kind":           string(receipt.Kind),
		"amount":         receipt.Amount.String(),
		"balance":        receipt.Balance.String(),
	}
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrWithdrawalLimitExceeded):
		return status.Errorf(codes.FailedPrecondition, "%s", errorMsg)
	case errors.Is(err, domain.ErrAccountNotOwned):
		return status.Errorf(codes.PermissionDenied, "%s", errorMsg)
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "cannot be") ||
		strings.Contains(errorMsg, "invalid") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
