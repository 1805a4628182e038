package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pratish444/QuoteVault/internal/client/decode"
	"github.com/pratish444/QuoteVault/internal/client/models"
	"github.com/pratish444/QuoteVault/internal/client/remote"
	"github.com/pratish444/QuoteVault/internal/client/repositories/metadata"
	"github.com/pratish444/QuoteVault/internal/common"
)

// Local key/value keys.
const (
	KeyUserID               = "user_id"
	KeyTheme                = "theme"
	KeyAccentColor          = "accent_color"
	KeyFontSize             = "font_size"
	KeyFontFamily           = "font_family"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyNotificationHour     = "notification_hour"
	KeyNotificationMinute   = "notification_minute"
)

var preferenceKeys = []string{
	KeyTheme, KeyAccentColor, KeyFontSize, KeyFontFamily,
	KeyNotificationsEnabled, KeyNotificationHour, KeyNotificationMinute,
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// PreferencesService keeps the user's settings in the local key/value store
// and mirrors them to the remote user_preferences row. It also holds the
// signed-in user id.
type PreferencesService struct {
	remote remote.Client
	kv     metadata.Repository
	opts   options
}

func NewPreferencesService(rc remote.Client, kv metadata.Repository, opts ...Option) *PreferencesService {
	return &PreferencesService{remote: rc, kv: kv, opts: newOptions(opts)}
}

// UserID returns the stored user id, or "" when signed out.
func (s *PreferencesService) UserID(ctx context.Context) (string, error) {
	v, err := s.kv.Get(ctx, KeyUserID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *PreferencesService) SaveUserID(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty user id", common.ErrInvalidInput)
	}
	return s.kv.Set(ctx, KeyUserID, []byte(id))
}

func (s *PreferencesService) ClearUserID(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyUserID)
}

// Local returns the stored preferences; unset or malformed values take their
// defaults.
func (s *PreferencesService) Local(ctx context.Context) (models.Preferences, error) {
	all, err := s.kv.List(ctx)
	if err != nil {
		return models.Preferences{}, err
	}
	row := make(remote.Row, len(preferenceKeys))
	for _, k := range preferenceKeys {
		if v, ok := all[k]; ok {
			row[k] = string(v)
		}
	}
	return decode.Preferences(row), nil
}

func (s *PreferencesService) SetTheme(ctx context.Context, theme models.Theme) error {
	t, ok := models.ParseTheme(string(theme))
	if !ok {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidInput, theme)
	}
	return s.kv.Set(ctx, KeyTheme, []byte(t))
}

func (s *PreferencesService) SetAccentColor(ctx context.Context, color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("%w: accent color %q is not #RRGGBB", common.ErrInvalidInput, color)
	}
	return s.kv.Set(ctx, KeyAccentColor, []byte(strings.ToUpper(color)))
}

func (s *PreferencesService) SetFontSize(ctx context.Context, size models.FontSize) error {
	fs, ok := models.ParseFontSize(string(size))
	if !ok {
		return fmt.Errorf("%w: unknown font size %q", common.ErrInvalidInput, size)
	}
	return s.kv.Set(ctx, KeyFontSize, []byte(fs))
}

func (s *PreferencesService) SetFontFamily(ctx context.Context, family string) error {
	if !slices.Contains(models.FontFamilies, family) {
		return fmt.Errorf("%w: unknown font family %q", common.ErrInvalidInput, family)
	}
	return s.kv.Set(ctx, KeyFontFamily, []byte(family))
}

// SetNotifications stores the daily notification switch and time.
func (s *PreferencesService) SetNotifications(ctx context.Context, enabled bool, hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("%w: notification time %02d:%02d", common.ErrInvalidInput, hour, minute)
	}
	return s.kv.SetMany(ctx, map[string][]byte{
		KeyNotificationsEnabled: []byte(strconv.FormatBool(enabled)),
		KeyNotificationHour:     []byte(strconv.Itoa(hour)),
		KeyNotificationMinute:   []byte(strconv.Itoa(minute)),
	})
}

// PullRemote replaces the local preferences with the remote row. A missing
// row or a missing remote table is not an error: the local preferences are
// returned unchanged.
func (s *PreferencesService) PullRemote(ctx context.Context) (models.Preferences, error) {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return models.Preferences{}, err
	}

	rows, err := s.selectRow(ctx, uid)
	if err != nil {
		remoteFailuresTotal.WithLabelValues("pull_preferences").Inc()
		if errors.Is(err, remote.ErrSchemaAbsent) {
			s.opts.log.Info(ctx, "remote preferences not provisioned", "table", remote.TablePreferences, "err", err)
			return s.Local(ctx)
		}
		s.opts.log.Warn(ctx, "preferences pull failed", "table", remote.TablePreferences, "op", "select", "err", err)
		return models.Preferences{}, fmt.Errorf("pull preferences: %w", err)
	}
	if len(rows) == 0 {
		return s.Local(ctx)
	}

	p := decode.Preferences(rows[0])
	if err := s.kv.SetMany(ctx, encodePreferences(p)); err != nil {
		return models.Preferences{}, fmt.Errorf("store pulled preferences: %w", err)
	}
	return p, nil
}

// PushRemote writes the local preferences to the remote row, updating it
// when it exists and inserting it otherwise. Local state is never touched.
func (s *PreferencesService) PushRemote(ctx context.Context) error {
	uid, err := s.requireUser(ctx)
	if err != nil {
		return err
	}
	p, err := s.Local(ctx)
	if err != nil {
		return err
	}

	row := preferencesRow(uid, p)
	row["updated_at"] = s.opts.clock.Now().UnixMilli()

	if err := s.push(ctx, uid, row); err != nil {
		remoteFailuresTotal.WithLabelValues("push_preferences").Inc()
		s.opts.log.Warn(ctx, "preferences push failed", "table", remote.TablePreferences, "op", "push", "err", err)
		return fmt.Errorf("push preferences: %w", err)
	}
	return nil
}

func (s *PreferencesService) push(ctx context.Context, uid string, row remote.Row) error {
	existing, err := s.selectRow(ctx, uid)
	if err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, s.opts.remoteTimeout)
	defer cancel()
	if len(existing) > 0 {
		return s.remote.Update(rctx, remote.TablePreferences, row, remote.Eq("user_id", uid))
	}
	return s.remote.Insert(rctx, remote.TablePreferences, row)
}

func (s *PreferencesService) selectRow(ctx context.Context, uid string) ([]remote.Row, error) {
	rctx, cancel := context.WithTimeout(ctx, s.opts.remoteTimeout)
	defer cancel()
	return s.remote.Select(rctx, remote.TablePreferences, remote.Eq("user_id", uid).WithLimit(1))
}

func (s *PreferencesService) requireUser(ctx context.Context) (string, error) {
	uid, err := s.UserID(ctx)
	if err != nil {
		return "", err
	}
	if uid == "" {
		return "", common.ErrNotAuthenticated
	}
	return uid, nil
}

func encodePreferences(p models.Preferences) map[string][]byte {
	return map[string][]byte{
		KeyTheme:                []byte(p.Theme),
		KeyAccentColor:          []byte(p.AccentColor),
		KeyFontSize:             []byte(p.FontSize),
		KeyFontFamily:           []byte(p.FontFamily),
		KeyNotificationsEnabled: []byte(strconv.FormatBool(p.NotificationsEnabled)),
		KeyNotificationHour:     []byte(strconv.Itoa(p.NotificationHour)),
		KeyNotificationMinute:   []byte(strconv.Itoa(p.NotificationMinute)),
	}
}

func preferencesRow(uid string, p models.Preferences) remote.Row {
	return remote.Row{
		"user_id":               uid,
		"theme":                 string(p.Theme),
		"accent_color":          p.AccentColor,
		"font_size":             string(p.FontSize),
		"font_family":           p.FontFamily,
		"notifications_enabled": p.NotificationsEnabled,
		"notification_hour":     p.NotificationHour,
		"notification_minute":   p.NotificationMinute,
	}
}
