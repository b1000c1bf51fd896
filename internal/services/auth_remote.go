package service

import (
	"context"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/fashionhub/internal/cache"
	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/identity"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
)

// remoteAuth signs in through the identity service and keeps a profile per
// account. The admin flag is decided when the profile is first written and
// read back from storage afterwards; later allow-list edits do not change it.
type remoteAuth struct {
	identity  identity.Service
	profiles  repository.ProfileRepository
	cache     cache.Cache
	allowList []string
}

// NewRemoteAuth returns the identity backed provider. profileCache may be nil.
// allowList entries are compared case-insensitively.
func NewRemoteAuth(identitySvc identity.Service, profiles repository.ProfileRepository, profileCache cache.Cache, allowList []string) AuthProvider {
	p := &remoteAuth{
		identity:  identitySvc,
		profiles:  profiles,
		cache:     profileCache,
		allowList: normalizeAllowList(allowList),
	}

	// drop the cached profile whenever the identity session ends
	var lastID string
	identitySvc.OnAuthStateChanged(func(account *models.Account) {
		if account != nil {
			lastID = account.ID
			return
		}
		if lastID != "" && p.cache != nil {
			_ = p.cache.Delete(context.Background(), cache.Key(cache.ProfileKeyPrefix, lastID))
		}
		lastID = ""
	})

	return p
}

func (p *remoteAuth) Login(ctx context.Context, email, password string) (*models.User, error) {

	account, err := p.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	profile, err := p.loadOrCreateProfile(ctx, account)
	if err != nil {
		p.abandon(ctx)
		return nil, err
	}

	return profile.User(), nil
}

func (p *remoteAuth) Signup(ctx context.Context, email, password, name string) (*models.User, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ValidationError("Name is required")
	}

	account, err := p.identity.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := p.identity.UpdateProfile(ctx, name); err != nil {
		p.abandon(ctx)
		return nil, err
	}

	profile := &models.Profile{
		ID:      account.ID,
		Email:   account.Email,
		Name:    name,
		IsAdmin: p.isAllowListed(account.Email),
	}

	if err := p.profiles.CreateProfile(ctx, profile); err != nil {
		p.abandon(ctx)
		return nil, errors.DatabaseError("Failed to create profile").WithError(err)
	}

	p.cacheProfile(ctx, profile)

	return profile.User(), nil
}

func (p *remoteAuth) Logout(ctx context.Context) error {
	return p.identity.SignOut(ctx)
}

func (p *remoteAuth) Restore(ctx context.Context) (*models.User, error) {

	if err := p.identity.Restore(ctx); err != nil {
		return nil, err
	}

	account := p.identity.CurrentAccount()
	if account == nil {
		return nil, nil
	}

	profile, err := p.loadOrCreateProfile(ctx, account)
	if err != nil {
		p.abandon(ctx)
		return nil, err
	}

	return profile.User(), nil
}

func (p *remoteAuth) loadOrCreateProfile(ctx context.Context, account *models.Account) (*models.Profile, error) {

	logger := logging.FromContext(ctx)
	key := cache.Key(cache.ProfileKeyPrefix, account.ID)

	if p.cache != nil {
		var cached models.Profile
		hit, err := p.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("profile cache read failed", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	profile, err := p.profiles.GetProfile(ctx, account.ID)
	if err == nil {
		p.cacheProfile(ctx, profile)
		return profile, nil
	}

	if !repository.IsNotFound(err) {
		return nil, errors.DatabaseError("Failed to load profile").WithError(err)
	}

	name := account.DisplayName
	if name == "" {
		name, _, _ = strings.Cut(account.Email, "@")
	}

	profile = &models.Profile{
		ID:      account.ID,
		Email:   account.Email,
		Name:    name,
		IsAdmin: p.isAllowListed(account.Email),
	}

	if err := p.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, errors.DatabaseError("Failed to create profile").WithError(err)
	}

	logger.Info("created missing profile", "accountID", account.ID)
	p.cacheProfile(ctx, profile)

	return profile, nil
}

func (p *remoteAuth) cacheProfile(ctx context.Context, profile *models.Profile) {
	if p.cache == nil {
		return
	}

	if err := p.cache.Set(ctx, cache.Key(cache.ProfileKeyPrefix, profile.ID), profile, 0); err != nil {
		logging.FromContext(ctx).Warn("profile cache write failed", "error", err)
	}
}

// abandon ends an identity session whose profile step failed, so the
// identity service and the auth container agree on being signed out.
func (p *remoteAuth) abandon(ctx context.Context) {
	if err := p.identity.SignOut(ctx); err != nil {
		logging.FromContext(ctx).Warn("failed to end half-finished session", "error", err)
	}
}

func (p *remoteAuth) isAllowListed(email string) bool {
	return slices.Contains(p.allowList, strings.ToLower(strings.TrimSpace(email)))
}

func normalizeAllowList(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			out = append(out, e)
		}
	}

	return out
}
