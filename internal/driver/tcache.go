package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ukl/internal/source"
	"ukl/internal/token"
)

// Current schema version - increment when cachePayload format changes
const tokenCacheSchemaVersion uint16 = 1

// TokenCache хранит токены безошибочно разобранных файлов на диске,
// по ключу sha256(содержимое) + режим (raw/meaningful).
// Thread-safe for concurrent access.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedToken struct {
	Kind      uint8  `msgpack:"k"`
	Text      string `msgpack:"t,omitempty"`
	Base      uint8  `msgpack:"b,omitempty"`
	Multiline bool   `msgpack:"m,omitempty"`
	Char      int32  `msgpack:"c,omitempty"`
	Start     uint32 `msgpack:"s"`
	End       uint32 `msgpack:"e"`
}

type cachePayload struct {
	Schema uint16        `msgpack:"schema"`
	Tokens []cachedToken `msgpack:"tokens"`
}

// OpenTokenCache открывает кэш в $XDG_CACHE_HOME/<app>/tokens (или ~/.cache).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache uses dir as the cache root.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tokens"), 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

func cacheKey(file *source.File, opts Options) string {
	mode := byte('m')
	if opts.Raw {
		mode = 'r'
	}
	h := sha256.New()
	h.Write(file.Hash[:])
	h.Write([]byte{mode})
	return hex.EncodeToString(h.Sum(nil))
}

func (c *TokenCache) pathFor(key string) string {
	return filepath.Join(c.dir, "tokens", key+".mp")
}

// Lookup returns cached tokens for file, re-anchored to its FileID.
// Любая ошибка чтения трактуется как промах.
func (c *TokenCache) Lookup(file *source.File, opts Options) ([]source.Spanned[token.Token], bool) {
	if c == nil {
		return nil, false
	}
	var payload cachePayload
	ok, err := c.get(cacheKey(file, opts), &payload)
	if err != nil || !ok || payload.Schema != tokenCacheSchemaVersion {
		return nil, false
	}
	out := make([]source.Spanned[token.Token], len(payload.Tokens))
	for i, ct := range payload.Tokens {
		out[i] = source.At(token.Token{
			Kind:      token.Kind(ct.Kind),
			Text:      ct.Text,
			Base:      ct.Base,
			Multiline: ct.Multiline,
			Char:      rune(ct.Char),
		}, source.NewSpan(file.ID, source.BytePos(ct.Start), source.BytePos(ct.End)))
	}
	return out, true
}

// Store writes tokens for file. Failures are ignored: the cache is optional.
func (c *TokenCache) Store(file *source.File, opts Options, tokens []source.Spanned[token.Token]) {
	if c == nil {
		return
	}
	payload := cachePayload{
		Schema: tokenCacheSchemaVersion,
		Tokens: make([]cachedToken, len(tokens)),
	}
	for i, t := range tokens {
		payload.Tokens[i] = cachedToken{
			Kind:      uint8(t.Value.Kind),
			Text:      t.Value.Text,
			Base:      t.Value.Base,
			Multiline: t.Value.Multiline,
			Char:      t.Value.Char,
			Start:     uint32(t.Span.Start),
			End:       uint32(t.Span.End),
		}
	}
	_ = c.put(cacheKey(file, opts), &payload) //nolint:errcheck
}

func (c *TokenCache) put(key string, payload *cachePayload) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

func (c *TokenCache) get(key string, out *cachePayload) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll удаляет все записи кэша.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tokensDir := filepath.Join(c.dir, "tokens")
	if err := os.RemoveAll(tokensDir); err != nil {
		return err
	}
	return os.MkdirAll(tokensDir, 0o755)
}
