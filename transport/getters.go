package transport

import "time"

// Accessors for the stored endpoint and channel parameters. These perform no
// I/O and are valid in any connection state.

func (s *Serial) PortName() string { return s.portName }

func (s *Serial) BaudRate() int { return s.baudRate }

func (s *Serial) Timeout() time.Duration { return s.cfg.timeout }

func (s *Serial) Terminator() string { return s.cfg.terminator }

func (s *Socket) Host() string { return s.host }

func (s *Socket) Port() int { return s.port }

func (s *Socket) Timeout() time.Duration { return s.cfg.timeout }

func (s *Socket) Terminator() string { return s.cfg.terminator }

func (v *Visa) Address() string { return v.address }

func (v *Visa) Timeout() time.Duration { return v.cfg.timeout }

func (v *Visa) Terminator() string { return v.cfg.terminator }
