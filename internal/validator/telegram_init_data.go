package validator

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Zaebanec/NexusGear/internal/usecase"
)

// TelegramInitData はWebAppから来るinitData（クエリ文字列）の署名を確かめる。
// secret = sha256(bot token), hash = hex(HMAC-SHA256(secret, check string))
type TelegramInitData struct {
	botToken string
	maxAge   time.Duration // 0なら期限を見ない
	now      func() time.Time
}

func NewTelegramInitData(botToken string, maxAge time.Duration) *TelegramInitData {
	return &TelegramInitData{botToken: botToken, maxAge: maxAge, now: time.Now}
}

func (v *TelegramInitData) Verify(raw string) (usecase.TelegramUser, error) {
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return usecase.TelegramUser{}, fmt.Errorf("%w: malformed init data", usecase.ErrUnauthorized)
	}

	got := vals.Get("hash")
	if got == "" {
		return usecase.TelegramUser{}, fmt.Errorf("%w: hash is missing", usecase.ErrUnauthorized)
	}
	want := SignInitData(v.botToken, vals)
	if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return usecase.TelegramUser{}, fmt.Errorf("%w: invalid signature", usecase.ErrUnauthorized)
	}

	if v.maxAge > 0 {
		sec, err := strconv.ParseInt(vals.Get("auth_date"), 10, 64)
		if err != nil || v.now().Sub(time.Unix(sec, 0)) > v.maxAge {
			return usecase.TelegramUser{}, fmt.Errorf("%w: init data expired", usecase.ErrUnauthorized)
		}
	}

	var tu usecase.TelegramUser
	if err := json.Unmarshal([]byte(vals.Get("user")), &tu); err != nil || tu.ID <= 0 {
		return usecase.TelegramUser{}, fmt.Errorf("%w: missing user", usecase.ErrUnauthorized)
	}
	return tu, nil
}

// hash以外をキー順に"k=v"で改行連結して署名する
func SignInitData(botToken string, vals url.Values) string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+vals.Get(k))
	}

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
