// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

// CredentialFreshnessWindow is how long a stored hash stays usable for
// offline login, counted from when the hash was created. After the window
// the user must authenticate online again.
const CredentialFreshnessWindow = 30 * 24 * time.Hour

// argon2id parameters for the stored credential hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

const (
	vaultKeyUsername      = "username"
	vaultKeyServerURL     = "server_url"
	vaultKeyPasswordHash  = "password_hash"
	vaultKeySalt          = "salt"
	vaultKeyHashCreated   = "hash_created"
	vaultKeyLastValidated = "last_validated"
	vaultKeyOfflineMode   = "offline_mode"
)

// credentialVault is the preference-backed implementation of
// [CredentialVault]. It holds at most one credential set, stored as an
// argon2id hash in the "vault" namespace.
type credentialVault struct {
	prefs  *store.Prefs
	logger *logger.Logger
	now    func() time.Time
}

func NewCredentialVault(prefs *store.Prefs, logger *logger.Logger) CredentialVault {
	logger.Debug().Msg("creating credential vault")
	return &credentialVault{prefs: prefs, logger: logger, now: time.Now}
}

func (v *credentialVault) Save(_ context.Context, username, password, serverURL string) error {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate credential salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	now := v.now().UTC()

	pairs := map[string]string{
		vaultKeyUsername:      username,
		vaultKeyServerURL:     normalizeServerURL(serverURL),
		vaultKeyPasswordHash:  base64.StdEncoding.EncodeToString(hash),
		vaultKeySalt:          base64.StdEncoding.EncodeToString(salt),
		vaultKeyHashCreated:   now.Format(time.RFC3339),
		vaultKeyLastValidated: now.Format(time.RFC3339),
	}
	for key, value := range pairs {
		if err := v.prefs.PutString(key, value); err != nil {
			return fmt.Errorf("persist credential field %s: %w", key, err)
		}
	}

	v.logger.Debug().Str("username", username).Msg("credentials stored for offline login")
	return nil
}

func (v *credentialVault) Validate(_ context.Context, username, password, serverURL string) error {
	record, err := v.Stored()
	if err != nil {
		return err
	}

	if !strings.EqualFold(record.Username, username) ||
		record.ServerURL != normalizeServerURL(serverURL) {
		return ErrOfflineLoginRejected
	}

	if v.now().UTC().Sub(record.HashCreatedAt) > CredentialFreshnessWindow {
		return ErrCredentialsStale
	}

	salt, err := base64.StdEncoding.DecodeString(record.Salt)
	if err != nil {
		return fmt.Errorf("decode stored salt: %w", err)
	}
	storedHash, err := base64.StdEncoding.DecodeString(record.PasswordHash)
	if err != nil {
		return fmt.Errorf("decode stored hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	if subtle.ConstantTimeCompare(computed, storedHash) != 1 {
		return ErrOfflineLoginRejected
	}

	if err = v.prefs.PutString(vaultKeyLastValidated, v.now().UTC().Format(time.RFC3339)); err != nil {
		v.logger.Warn().Err(err).Msg("refreshing last-validated marker failed")
	}
	return nil
}

func (v *credentialVault) Stored() (models.CredentialRecord, error) {
	username, err := v.prefs.GetString(vaultKeyUsername)
	if err != nil {
		if errors.Is(err, store.ErrPrefKeyNotFound) {
			return models.CredentialRecord{}, ErrNoStoredCredentials
		}
		return models.CredentialRecord{}, err
	}

	record := models.CredentialRecord{Username: username}
	if record.ServerURL, err = v.prefs.GetString(vaultKeyServerURL); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("vault missing server url: %w", err)
	}
	if record.PasswordHash, err = v.prefs.GetString(vaultKeyPasswordHash); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("vault missing password hash: %w", err)
	}
	if record.Salt, err = v.prefs.GetString(vaultKeySalt); err != nil {
		return models.CredentialRecord{}, fmt.Errorf("vault missing salt: %w", err)
	}

	if record.HashCreatedAt, err = v.timeField(vaultKeyHashCreated); err != nil {
		return models.CredentialRecord{}, err
	}
	if record.LastValidatedAt, err = v.timeField(vaultKeyLastValidated); err != nil {
		return models.CredentialRecord{}, err
	}

	record.OfflineMode = v.OfflineMode()
	return record, nil
}

func (v *credentialVault) SetOfflineMode(enabled bool) error {
	return v.prefs.PutBool(vaultKeyOfflineMode, enabled)
}

func (v *credentialVault) OfflineMode() bool {
	enabled, err := v.prefs.GetBool(vaultKeyOfflineMode)
	if err != nil {
		return false
	}
	return enabled
}

func (v *credentialVault) Clear() error {
	return v.prefs.Clear()
}

func (v *credentialVault) timeField(key string) (time.Time, error) {
	raw, err := v.prefs.GetString(key)
	if err != nil {
		return time.Time{}, fmt.Errorf("vault missing %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("vault field %s is not a timestamp: %w", key, err)
	}
	return t, nil
}

func normalizeServerURL(serverURL string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(serverURL), "/"))
}
