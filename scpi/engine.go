package scpi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/instrhub/go-scpi/logger"
)

const (
	// DefaultCompletionTimeout is the default wall-clock limit for the
	// completion handshake of safe operations. A zero timeout disables the
	// limit and polls until completion or error.
	DefaultCompletionTimeout = 5 * time.Second

	// DefaultPollInterval is the default sleep between status register polls.
	DefaultPollInterval = 100 * time.Millisecond
)

// opcMask selects the event status register bit treated as the completion
// signal. Instruments driven by this engine report operation complete on bit 1
// (value 2) of the ESR rather than on the IEEE 488.2 "Operation Complete"
// bit 0; the decoding table in status.go keeps the standard names.
const opcMask = 0x02

// Engine implements the standard IEEE 488.2 common command set on top of a
// Transport, plus safe send/query operations that run the *OPC / *ESR?
// completion handshake.
//
// An Engine issues strictly one request/response pair at a time on its
// Transport and inherits the Transport's single-owner concurrency model.
type Engine struct {
	transport Transport
	logger    logger.Logger
	metrics   EngineMetrics
}

// NewEngine creates a protocol engine bound to the given transport.
func NewEngine(t Transport, opts ...EngineOption) *Engine {
	e := &Engine{
		transport: t,
		logger:    logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Transport returns the transport the engine is bound to.
func (e *Engine) Transport() Transport {
	return e.transport
}

// Metrics returns the engine metrics.
func (e *Engine) Metrics() *EngineMetrics {
	return &e.metrics
}

// IDN issues the *IDN? identification query.
func (e *Engine) IDN() (string, error) {
	return e.transport.Query("*IDN?")
}

// Reset issues *RST to reset the instrument.
func (e *Engine) Reset() error {
	return e.transport.Write("*RST")
}

// ClearStatus issues *CLS to clear the instrument status registers.
func (e *Engine) ClearStatus() error {
	return e.transport.Write("*CLS")
}

// OPC issues *OPC, requesting that the instrument set the operation-complete
// bit in the event status register once all pending operations finish.
func (e *Engine) OPC() error {
	return e.transport.Write("*OPC")
}

// QueryOPC issues *OPC?, which blocks on the instrument side until all pending
// operations finish.
func (e *Engine) QueryOPC() (string, error) {
	return e.transport.Query("*OPC?")
}

// QueryESR reads the standard event status register with *ESR?.
func (e *Engine) QueryESR() (string, error) {
	return e.transport.Query("*ESR?")
}

// QuerySTB reads the status byte with *STB?.
func (e *Engine) QuerySTB() (string, error) {
	return e.transport.Query("*STB?")
}

// SetSRE sets the service request enable register.
func (e *Engine) SetSRE(value int) error {
	return e.transport.Write(fmt.Sprintf("*SRE %d", value))
}

// QuerySRE reads the service request enable register.
func (e *Engine) QuerySRE() (string, error) {
	return e.transport.Query("*SRE?")
}

// SetESE sets the standard event status enable register.
func (e *Engine) SetESE(value int) error {
	return e.transport.Write(fmt.Sprintf("*ESE %d", value))
}

// QueryESE reads the standard event status enable register.
func (e *Engine) QueryESE() (string, error) {
	return e.transport.Query("*ESE?")
}

// QueryOptions reads the installed options with *OPT?.
func (e *Engine) QueryOptions() (string, error) {
	return e.transport.Query("*OPT?")
}

// SetPSC sets the power-on status clear flag.
func (e *Engine) SetPSC(on bool) error {
	v := 0
	if on {
		v = 1
	}

	return e.transport.Write(fmt.Sprintf("*PSC %d", v))
}

// QueryPSC reads the power-on status clear setting.
func (e *Engine) QueryPSC() (string, error) {
	return e.transport.Query("*PSC?")
}

// Recall issues *RCL to restore instrument state from the named file.
func (e *Engine) Recall(filename string) error {
	return e.transport.Write(fmt.Sprintf("*RCL %q", filename))
}

// Save issues *SAV to store instrument state to the named file.
func (e *Engine) Save(filename string) error {
	return e.transport.Write(fmt.Sprintf("*SAV %q", filename))
}

// Trigger issues *TRG.
func (e *Engine) Trigger() error {
	return e.transport.Write("*TRG")
}

// SelfTest runs the instrument self-test with *TST? and returns the result.
func (e *Engine) SelfTest() (string, error) {
	return e.transport.Query("*TST?")
}

// Wait issues *WAI, instructing the instrument not to execute further
// commands until all pending operations finish.
func (e *Engine) Wait() error {
	return e.transport.Write("*WAI")
}

// Send writes a command to the instrument. By default it is safe: after the
// write it runs the completion handshake and returns only once the instrument
// confirms execution, or fails with a StatusError, ParseError, or
// ErrCompletionTimeout. Pass Unsafe() to return immediately after the write.
func (e *Engine) Send(command string, opts ...SendOption) error {
	o := newSendOptions(opts)

	if err := e.transport.Write(command); err != nil {
		return err
	}
	e.metrics.incCommandSendCount()

	if !o.safe {
		return nil
	}

	return e.awaitCompletion(command, o.timeout, o.interval)
}

// Query sends a query command and returns the captured response. By default
// it is safe: the response is returned only if the completion handshake
// succeeds. Pass Unsafe() to return the response unconditionally.
func (e *Engine) Query(command string, opts ...SendOption) (string, error) {
	o := newSendOptions(opts)

	response, err := e.transport.Query(command)
	if err != nil {
		return "", err
	}
	e.metrics.incQuerySendCount()

	if !o.safe {
		return response, nil
	}

	if err := e.awaitCompletion(command, o.timeout, o.interval); err != nil {
		return "", err
	}

	return response, nil
}

// completionState is a terminal state of the completion handshake.
// Exactly one terminal state is reached per invocation.
type completionState int

const (
	completionDone completionState = iota
	completionStatusErr
	completionParseErr
	completionTimedOut
)

// completionResult is the outcome of one completion handshake: the terminal
// state plus the register value or raw reply that produced it.
type completionResult struct {
	state completionState
	esr   byte
	raw   string
}

// awaitCompletion arms the operation-complete bit with *OPC, runs the polling
// loop, and converts the terminal state into the engine error taxonomy.
func (e *Engine) awaitCompletion(command string, timeout, interval time.Duration) error {
	if err := e.transport.Write("*OPC"); err != nil {
		return err
	}

	result, err := e.pollCompletion(timeout, interval)
	if err != nil {
		// transport fault during polling, propagated as-is
		return err
	}

	switch result.state {
	case completionDone:
		e.metrics.incCompletionCount()
		return nil

	case completionStatusErr:
		e.metrics.incCompletionErrCount()
		statusErr := NewStatusError(result.esr)
		e.logger.Debug("command completed with error flags", "command", command, "esr", result.esr, "flags", statusErr.Flags)

		return statusErr

	case completionParseErr:
		e.metrics.incCompletionErrCount()
		return &ParseError{Raw: result.raw}

	case completionTimedOut:
		e.metrics.incCompletionErrCount()
		return fmt.Errorf("%w: no completion after %s", ErrCompletionTimeout, timeout)

	default:
		return fmt.Errorf("%w: unknown completion state %d", ErrProtocol, result.state)
	}
}

// pollCompletion repeatedly queries *ESR? until the completion bit is set, an
// error condition is reported, the reply cannot be parsed, or the timeout
// elapses. A zero timeout polls indefinitely. The returned error is non-nil
// only for transport faults; handshake outcomes are reported in the result.
func (e *Engine) pollCompletion(timeout, interval time.Duration) (completionResult, error) {
	start := time.Now()

	for {
		reply, err := e.transport.Query("*ESR?")
		if err != nil {
			return completionResult{}, err
		}

		value, perr := strconv.ParseInt(strings.TrimSpace(reply), 10, 16)
		if perr != nil {
			return completionResult{state: completionParseErr, raw: reply}, nil
		}

		esr := byte(value & 0xff)
		if esr&opcMask != 0 {
			if esr&^byte(opcMask) != 0 {
				return completionResult{state: completionStatusErr, esr: esr}, nil
			}

			return completionResult{state: completionDone, esr: esr}, nil
		}

		if timeout != 0 && time.Since(start) > timeout {
			return completionResult{state: completionTimedOut}, nil
		}

		time.Sleep(interval)
	}
}
