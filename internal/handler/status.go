package handler

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"slot-swapper-api/internal/apperr"
)

// ErrorDomain is the ErrorInfo domain attached to every service error.
const ErrorDomain = "slotswap"

var grpcCodes = map[apperr.Code]codes.Code{
	apperr.NotFound:         codes.NotFound,
	apperr.Forbidden:        codes.PermissionDenied,
	apperr.InvalidState:     codes.FailedPrecondition,
	apperr.InvalidOperation: codes.FailedPrecondition,
	apperr.Inconsistent:     codes.Internal,
	apperr.Transient:        codes.Unavailable,
	apperr.InvalidArgument:  codes.InvalidArgument,
	apperr.Unauthenticated:  codes.Unauthenticated,
	apperr.Conflict:         codes.AlreadyExists,
}

// toStatus converts a service error to a gRPC status error. The apperr code
// travels as ErrorInfo.Reason so clients can tell INVALID_STATE from
// INVALID_OPERATION even though both are FailedPrecondition.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var e *apperr.Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, "internal error")
	}
	code, ok := grpcCodes[e.Code]
	if !ok {
		code = codes.Unknown
	}
	st, derr := status.New(code, e.Message).WithDetails(&errdetails.ErrorInfo{
		Reason: string(e.Code),
		Domain: ErrorDomain,
	})
	if derr != nil {
		return status.Error(code, e.Message)
	}
	return st.Err()
}

// ReasonOf returns the apperr code carried by a status error, or "".
func ReasonOf(err error) apperr.Code {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.Domain == ErrorDomain {
			return apperr.Code(info.Reason)
		}
	}
	return ""
}
