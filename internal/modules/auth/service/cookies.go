package service

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"monkid.com/backoffice/internal/entity"
)

const (
	CookieAccessToken    = "accessToken"
	CookieRefreshToken   = "refreshToken"
	CookieUserInfo       = "user_info"
	CookieAuthSuccessful = "auth_successful"
	CookieAuthTimestamp  = "auth_timestamp"
	CookieOAuthState     = "oauth_state"
)

// UserInfo is the decoded user_info cookie: "<id>:<email>:<unix timestamp>".
type UserInfo struct {
	UserID    uuid.UUID
	Email     string
	Timestamp time.Time
}

func FormatUserInfo(user *entity.User, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", user.ID, user.Email, at.Unix())
}

// ParseUserInfo accepts the raw or URL-encoded cookie value.
func ParseUserInfo(raw string) (*UserInfo, error) {
	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("user_info is not url-encoded: %w", err)
	}

	first := strings.Index(value, ":")
	last := strings.LastIndex(value, ":")
	if first < 0 || first == last {
		return nil, fmt.Errorf("user_info must have the form id:email:timestamp")
	}

	id, err := uuid.Parse(value[:first])
	if err != nil {
		return nil, fmt.Errorf("user_info id: %w", err)
	}
	email := value[first+1 : last]
	if email == "" {
		return nil, fmt.Errorf("user_info email is empty")
	}
	seconds, err := strconv.ParseInt(value[last+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("user_info timestamp: %w", err)
	}

	return &UserInfo{UserID: id, Email: email, Timestamp: time.Unix(seconds, 0)}, nil
}
