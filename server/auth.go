package server

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"main/amizone"
	"main/errors"
	"main/logger"
)

// authDB stores credentials for logged-in users. Each session is an
// opaque token in a cookie, mapped in redis to the user's Amizone
// credential pair with a multi-day expiry.
type authDB struct {
	client *redis.Client
	days   int
}

// Initializes the database and returns the created instance.
func initDB(addr, pwd string, idx int) *redis.Client {
	redisDB := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pwd,
		DB:       idx,
	})

	ctx := context.Background()
	res := redisDB.Ping(ctx)
	if res.Err() != nil {
		logger.Fatal(errors.NewError("server.initDB", "cannot reach redis", res.Err()))
	}

	return redisDB
}

// cookieValue extracts one cookie's value from a Cookie header.
func cookieValue(cookies, name string) string {
	start := strings.Index(cookies, name+"=")
	if start == -1 {
		return ""
	}
	start += len(name) + 1
	end := strings.Index(cookies[start:], ";")
	if end == -1 {
		return cookies[start:]
	}
	return cookies[start : start+end]
}

// lookup resolves the Cookie header to stored credentials plus the key
// that identifies the session. The session token is authoritative; the
// base64 credential cookie set by older deployments is accepted as a
// fallback so those sessions survive.
func (db *authDB) lookup(cookies string) (amizone.Credentials, string, error) {
	token := cookieValue(cookies, "token")
	if token == "" {
		if creds, ok := decodeCredCookie(cookies); ok {
			return creds, "user:" + creds.Username, nil
		}
		return amizone.Credentials{}, "", errInvalidAuth
	}

	ctx := context.Background()
	key := "session:" + token
	data := db.client.HGetAll(ctx, key)
	if data.Err() != nil {
		return amizone.Credentials{}, "", errors.NewError("server.lookup", "failed to get session data", data.Err())
	}
	result, err := data.Result()
	if err != nil || len(result) == 0 {
		return amizone.Credentials{}, "", errInvalidAuth
	}

	creds := amizone.Credentials{
		Username: result["username"],
		Password: result["password"],
	}
	if !creds.Valid() {
		return amizone.Credentials{}, "", errInvalidAuth
	}
	return creds, token, nil
}

// login validates the submitted pair by fetching the user's profile
// from Amizone, then writes a new session and returns its Set-Cookie
// value.
func (db *authDB) login(ctx context.Context, form url.Values) (string, error) {
	creds := amizone.Credentials{
		Username: strings.TrimSpace(form.Get("usr")),
		Password: form.Get("pwd"),
	}
	if err := validateLogin(creds); err != nil {
		return "", errors.NewError("server.login", "username or password is empty", errors.ErrAuthFailed)
	}

	if _, err := api.Profile(ctx, creds); err != nil {
		if errors.Is(err, errors.ErrInvalidCreds) {
			return "", errors.NewError("server.login", "credentials rejected by Amizone", errors.ErrAuthFailed)
		}
		return "", errors.NewError("server.login", "could not verify credentials", err)
	}

	token := uuid.NewString()
	key := "session:" + token
	duration := time.Until(time.Now().AddDate(0, 0, db.days))

	db.client.HSet(ctx, key, map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	})
	db.client.Expire(ctx, key, duration)

	cookie := "token=" + token + "; Expires="
	cookie += time.Now().UTC().AddDate(0, 0, db.days).Format(time.RFC1123)
	cookie += "; Path=/; HttpOnly"
	return cookie, nil
}

// logout deletes the session behind the Cookie header.
func (db *authDB) logout(cookies string) error {
	token := cookieValue(cookies, "token")
	if token == "" {
		return errInvalidAuth.AsError()
	}

	ctx := context.Background()
	if err := db.client.Del(ctx, "session:"+token).Err(); err != nil {
		return errors.NewError("server.logout", "could not delete session", err)
	}

	dropOrchestrator(token)
	return nil
}

// decodeCredCookie reads the legacy "amizone_auth" cookie: a base64
// "username:password" pair. Anything malformed reads as no credentials,
// never as an error.
func decodeCredCookie(cookies string) (amizone.Credentials, bool) {
	value := cookieValue(cookies, "amizone_auth")
	if value == "" {
		return amizone.Credentials{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return amizone.Credentials{}, false
	}
	user, pass, found := strings.Cut(string(raw), ":")
	if !found || user == "" || pass == "" {
		return amizone.Credentials{}, false
	}
	return amizone.Credentials{Username: user, Password: pass}, true
}

// encodeCredCookie builds the legacy credential cookie value.
func encodeCredCookie(creds amizone.Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
}
