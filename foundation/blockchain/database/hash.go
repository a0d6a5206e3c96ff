package database

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// Hash returns the lowercase hex sha256 digest of the previous hash, the
// nonce and the canonical JSON form of the payload concatenated together.
func Hash(prevHash string, nonce uint64, payload Payload) string {
	data := prevHash + strconv.FormatUint(nonce, 10) + canonical(payload)

	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// canonical serializes the payload the same way every time. An absent set
// of transactions is always written as an empty array and HTML characters
// are left as is.
func canonical(payload Payload) string {
	if payload.Transactions == nil {
		payload.Transactions = []Tx{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// A payload only holds strings and numbers so this can't fail.
	if err := enc.Encode(payload); err != nil {
		return ""
	}

	return rawSeparators(string(bytes.TrimRight(buf.Bytes(), "\n")))
}

// rawSeparators writes U+2028 and U+2029 back as raw runes. The encoder
// always escapes them but every other character is left as is. An escape
// preceded by an escaped backslash is literal text and is not touched.
func rawSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}

		switch {
		case strings.HasPrefix(s[i:], `\u2028`):
			b.WriteRune('\u2028')
			i += 5
		case strings.HasPrefix(s[i:], `\u2029`):
			b.WriteRune('\u2029')
			i += 5
		default:
			b.WriteString(s[i : i+2])
			i++
		}
	}

	return b.String()
}
