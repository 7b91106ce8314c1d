package session

import (
	"net/url"
	"strings"
)

// CallbackKind tags the shape of an inbound OAuth callback URL.
type CallbackKind int

const (
	// CallbackInvalid means the URL carried neither credentials nor an error.
	CallbackInvalid CallbackKind = iota
	// CallbackCode is an authorization-code redirect (?code=...).
	CallbackCode
	// CallbackImplicitToken is an implicit-flow fragment (#access_token=...).
	CallbackImplicitToken
	// CallbackProviderError is a provider-reported failure (?error=...).
	CallbackProviderError
)

// Callback is the parsed form of an OAuth redirect URL. Exactly one of
// Code, Token, Reason is meaningful, per Kind.
type Callback struct {
	Kind   CallbackKind
	Code   string
	Token  string
	Reason string
}

// ParseCallback classifies an OAuth callback URL once, so both exchange
// flows converge on a single dispatch. A provider error wins over any
// credentials also present.
func ParseCallback(rawURL string) Callback {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Callback{Kind: CallbackInvalid}
	}
	q := u.Query()

	if e := q.Get("error"); e != "" {
		reason := e
		if desc := q.Get("error_description"); desc != "" {
			reason = e + ": " + desc
		}
		return Callback{Kind: CallbackProviderError, Reason: reason}
	}

	if code := q.Get("code"); code != "" {
		return Callback{Kind: CallbackCode, Code: code}
	}

	// Implicit flow parameters arrive in the fragment, formatted like a
	// query string.
	if frag := strings.TrimPrefix(u.Fragment, "#"); frag != "" {
		fv, err := url.ParseQuery(frag)
		if err == nil {
			if e := fv.Get("error"); e != "" {
				reason := e
				if desc := fv.Get("error_description"); desc != "" {
					reason = e + ": " + desc
				}
				return Callback{Kind: CallbackProviderError, Reason: reason}
			}
			if tok := fv.Get("access_token"); tok != "" {
				return Callback{Kind: CallbackImplicitToken, Token: tok}
			}
		}
	}

	return Callback{Kind: CallbackInvalid}
}
