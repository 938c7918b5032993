package ports

import "github.com/layer-3/zetafrog/core"

// Tokenizer converts between local API sessions and tokens
type Tokenizer interface {
	SessionToAccessToken(session *core.Session) (string, error)
	AccessTokenToSession(token string) (*core.Session, error)
}
