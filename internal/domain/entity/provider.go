// Package entity contains the core business objects of the project.
package entity

// Provider identifies an external OAuth identity source.
type Provider string

const (
	// ProviderGoogle is Google Sign-In. The code exchange happens client-side,
	// so the server receives a ready profile instead of an authorization code.
	ProviderGoogle Provider = "google"
	// ProviderNaver is Naver OAuth 2.0.
	ProviderNaver Provider = "naver"
	// ProviderKakao is Kakao OAuth 2.0.
	ProviderKakao Provider = "kakao"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the Provider is a known value.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGoogle, ProviderNaver, ProviderKakao:
		return true
	default:
		return false
	}
}
