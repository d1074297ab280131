package advisor

import "fmt"

const (
	OpPredictNext    = "predict_next"
	OpGenerateReport = "generate_report"
)

// GatewayError wraps any failure of a remote advisory call: transport,
// non-2xx status, timeout or an unparseable reply.
type GatewayError struct {
	Op  string
	Err error
}

func (err *GatewayError) Error() string {
	return fmt.Sprintf("advisor %s: %v", err.Op, err.Err)
}

func (err *GatewayError) Unwrap() error {
	return err.Err
}

func wrapGatewayError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Err: err}
}
