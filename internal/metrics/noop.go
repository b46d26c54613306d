package metrics

import "time"

// NoopMetrics is a no-operation Recorder used when metrics are disabled.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordCodeIssued(success bool)                                {}
func (n *NoopMetrics) RecordCodeExchange(result string)                             {}
func (n *NoopMetrics) RecordTokenIssued(grantType string, d time.Duration)          {}
func (n *NoopMetrics) RecordTokenValidation(result string)                          {}
func (n *NoopMetrics) RecordTokenRevoked()                                          {}
func (n *NoopMetrics) RecordAuthAttempt(success bool, duration time.Duration)       {}
func (n *NoopMetrics) RecordLogout()                                                {}
func (n *NoopMetrics) SetActiveCodesCount(count int)                                {}
func (n *NoopMetrics) SetActiveTokensCount(count int)                               {}
