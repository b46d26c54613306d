// Package policy decides which redirect URIs are acceptable for a client
// at authorization time. The production-faithful default is exact matching
// against the client's registered URIs; the looser modes exist because this
// server is a test double and local callback ports move around. Every
// acceptance is logged so a test run can be audited afterwards.
package policy

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/Herald2025/seu-oauth2-mock/internal/config"
	"github.com/Herald2025/seu-oauth2-mock/internal/models"
)

// Policy decides whether a requested redirect URI is acceptable for a client.
type Policy interface {
	// Accept reports whether the URI may receive this client's codes.
	Accept(client *models.Client, redirectURI string) bool
	// Name identifies the policy in logs.
	Name() string
}

// FromConfig builds the policy selected by REDIRECT_POLICY.
func FromConfig(cfg *config.Config, log *logrus.Logger) (Policy, error) {
	switch cfg.RedirectPolicy {
	case config.RedirectPolicyExact:
		return &ExactMatch{log: log}, nil
	case config.RedirectPolicyHosts:
		return NewHostAllowlist(cfg.RedirectAllowedHosts, log), nil
	case config.RedirectPolicyAny:
		log.Warn("redirect URI policy set to accept-any; test environments only")
		return &AcceptAny{log: log}, nil
	default:
		return nil, fmt.Errorf("unknown redirect policy %q", cfg.RedirectPolicy)
	}
}

// ExactMatch accepts only URIs registered in the client's fixture file.
// This is the behavior a production identity provider must have.
type ExactMatch struct {
	log *logrus.Logger
}

func (p *ExactMatch) Name() string { return config.RedirectPolicyExact }

func (p *ExactMatch) Accept(client *models.Client, redirectURI string) bool {
	if redirectURI == "" {
		return false
	}
	for _, registered := range client.RedirectURIs {
		if registered == redirectURI {
			logAcceptance(p.log, p.Name(), client.ID, redirectURI)
			return true
		}
	}
	return false
}

// HostAllowlist accepts any URI whose host[:port] appears in a configured
// development allow-list, regardless of path.
type HostAllowlist struct {
	hosts map[string]bool
	log   *logrus.Logger
}

// NewHostAllowlist builds the policy over the given host[:port] entries.
func NewHostAllowlist(hosts []string, log *logrus.Logger) *HostAllowlist {
	set := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		set[h] = true
	}
	return &HostAllowlist{hosts: set, log: log}
}

func (p *HostAllowlist) Name() string { return config.RedirectPolicyHosts }

func (p *HostAllowlist) Accept(client *models.Client, redirectURI string) bool {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return false
	}
	if p.hosts[u.Host] || p.hosts[u.Hostname()] {
		logAcceptance(p.log, p.Name(), client.ID, redirectURI)
		return true
	}
	return false
}

// AcceptAny accepts every parseable absolute URI. Explicit opt-in for test
// environments; never use this in front of real credentials.
type AcceptAny struct {
	log *logrus.Logger
}

func (p *AcceptAny) Name() string { return config.RedirectPolicyAny }

func (p *AcceptAny) Accept(client *models.Client, redirectURI string) bool {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	logAcceptance(p.log, p.Name(), client.ID, redirectURI)
	return true
}

func logAcceptance(log *logrus.Logger, policy, clientID, redirectURI string) {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"policy":       policy,
		"client_id":    clientID,
		"redirect_uri": redirectURI,
	}).Info("redirect URI accepted")
}
