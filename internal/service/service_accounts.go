package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

const (
	accountKeyPrefix = "account."
	activeAccountKey = "active"

	// localStoreNameHexLen is how many hex characters of the account ID go
	// into the store file name. Long enough to avoid collisions between
	// accounts, short enough for a readable file name.
	localStoreNameHexLen = 12
)

// accountRegistry is the preference-backed implementation of
// [AccountRegistry]. Accounts are stored as JSON values inside the
// "accounts" namespace, keyed by derived account ID, plus one pointer key
// for the active account.
type accountRegistry struct {
	prefs  *store.Prefs
	logger *logger.Logger
}

func NewAccountRegistry(prefs *store.Prefs, logger *logger.Logger) AccountRegistry {
	logger.Debug().Msg("creating account registry")
	return &accountRegistry{prefs: prefs, logger: logger}
}

// DeriveAccountID computes the deterministic account identity for a
// username and server URL pair. Case and trailing-slash differences in the
// server URL are normalized away so the same logical server always yields
// the same account.
func DeriveAccountID(username, serverURL string) string {
	normalized := strings.ToLower(strings.TrimSpace(username)) + "|" +
		strings.ToLower(strings.TrimRight(strings.TrimSpace(serverURL), "/"))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// LocalStoreNameForID maps a derived account ID to its SQLite file name.
func LocalStoreNameForID(accountID string) string {
	return "account_" + accountID[:localStoreNameHexLen] + ".db"
}

func (r *accountRegistry) UpsertAccount(_ context.Context, username, serverURL, displayName string) (models.Account, error) {
	id := DeriveAccountID(username, serverURL)

	account := models.Account{
		ID:             id,
		Username:       username,
		ServerURL:      strings.TrimRight(strings.TrimSpace(serverURL), "/"),
		DisplayName:    displayName,
		LocalStoreName: LocalStoreNameForID(id),
		LastUsedAt:     time.Now().UTC(),
	}

	if existing, err := r.Account(id); err == nil && displayName == "" {
		account.DisplayName = existing.DisplayName
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return models.Account{}, fmt.Errorf("encode account: %w", err)
	}
	if err = r.prefs.PutString(accountKeyPrefix+id, string(payload)); err != nil {
		return models.Account{}, fmt.Errorf("persist account: %w", err)
	}

	r.logger.Debug().Str("account", id).Str("store", account.LocalStoreName).Msg("account registered")
	return account, nil
}

func (r *accountRegistry) Account(id string) (models.Account, error) {
	raw, err := r.prefs.GetString(accountKeyPrefix + id)
	if err != nil {
		if errors.Is(err, store.ErrPrefKeyNotFound) {
			return models.Account{}, fmt.Errorf("account %s: %w", id, ErrAccountNotFound)
		}
		return models.Account{}, err
	}

	var account models.Account
	if err = json.Unmarshal([]byte(raw), &account); err != nil {
		return models.Account{}, fmt.Errorf("decode account %s: %w", id, err)
	}
	return account, nil
}

func (r *accountRegistry) Accounts() ([]models.Account, error) {
	keys := r.prefs.Keys()
	sort.Strings(keys)

	accounts := make([]models.Account, 0, len(keys))
	for _, key := range keys {
		if !strings.HasPrefix(key, accountKeyPrefix) {
			continue
		}
		account, err := r.Account(strings.TrimPrefix(key, accountKeyPrefix))
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *accountRegistry) ActiveAccount() (models.Account, error) {
	id, err := r.prefs.GetString(activeAccountKey)
	if err != nil {
		if errors.Is(err, store.ErrPrefKeyNotFound) {
			return models.Account{}, ErrNoActiveAccount
		}
		return models.Account{}, err
	}
	return r.Account(id)
}

func (r *accountRegistry) SetActiveAccount(id string) error {
	if _, err := r.Account(id); err != nil {
		return err
	}
	return r.prefs.PutString(activeAccountKey, id)
}

func (r *accountRegistry) ClearActiveAccount() error {
	return r.prefs.Remove(activeAccountKey)
}

func (r *accountRegistry) RemoveAll() error {
	return r.prefs.Clear()
}
