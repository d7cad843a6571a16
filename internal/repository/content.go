package repository

import (
	"context"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ContentRepository reads and replaces the flat site content collections.
type ContentRepository struct {
	db database.DBTX
}

func NewContentRepository(db database.DBTX) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListServices(ctx context.Context) ([]model.Service, error) {
	items, err := listRows[model.Service](ctx, r.db, `
		SELECT id, name, image_url, contact, link, description, created_at, updated_at
		FROM services ORDER BY created_at DESC, id DESC`)
	return items, errors.Wrap(err, "failed to list services")
}

func (r *ContentRepository) ListArticles(ctx context.Context) ([]model.Article, error) {
	items, err := listRows[model.Article](ctx, r.db, `
		SELECT id, title, content, image_url, date, created_at, updated_at
		FROM articles ORDER BY created_at DESC, id DESC`)
	return items, errors.Wrap(err, "failed to list articles")
}

func (r *ContentRepository) ListAbout(ctx context.Context) ([]model.AboutItem, error) {
	items, err := listRows[model.AboutItem](ctx, r.db, `
		SELECT id, title, description, created_at, updated_at
		FROM about_items ORDER BY created_at DESC, id DESC`)
	return items, errors.Wrap(err, "failed to list about items")
}

func (r *ContentRepository) ListAdvantages(ctx context.Context) ([]model.Advantage, error) {
	items, err := listRows[model.Advantage](ctx, r.db, `
		SELECT id, icon, title, description, created_at, updated_at
		FROM advantages ORDER BY created_at DESC, id DESC`)
	return items, errors.Wrap(err, "failed to list advantages")
}

func (r *ContentRepository) ListPartners(ctx context.Context) ([]model.Partner, error) {
	items, err := listRows[model.Partner](ctx, r.db, `
		SELECT id, name, logo_url, created_at, updated_at
		FROM partners ORDER BY created_at DESC, id DESC`)
	return items, errors.Wrap(err, "failed to list partners")
}

// LatestHero returns the hero row with the highest id, or nil.
func (r *ContentRepository) LatestHero(ctx context.Context) (*model.HeroSection, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, highlighted_text, subtitle, description, image_url, created_at, updated_at
		FROM hero_section ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read hero section")
	}

	hero, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.HeroSection])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read hero section")
	}

	return hero, nil
}

// The Replace* methods delete every row of their table and insert the
// given rows. They are only meant to run inside the bulk import
// transaction.

func (r *ContentRepository) ReplaceServices(ctx context.Context, items []model.ServiceInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM services"); err != nil {
		return errors.Wrap(err, "failed to clear services")
	}
	for _, s := range items {
		_, err := r.db.Exec(ctx,
			"INSERT INTO services (name, image_url, contact, link, description) VALUES ($1, $2, $3, $4, $5)",
			s.Name, s.ImageURL, s.Contact, s.Link, s.Description,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert service")
		}
	}
	return nil
}

func (r *ContentRepository) ReplaceArticles(ctx context.Context, items []model.ArticleInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM articles"); err != nil {
		return errors.Wrap(err, "failed to clear articles")
	}
	for _, a := range items {
		_, err := r.db.Exec(ctx,
			"INSERT INTO articles (title, content, image_url, date) VALUES ($1, $2, $3, $4)",
			a.Title, a.Content, a.ImageURL, a.Date,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert article")
		}
	}
	return nil
}

func (r *ContentRepository) ReplaceAbout(ctx context.Context, items []model.AboutItemInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM about_items"); err != nil {
		return errors.Wrap(err, "failed to clear about items")
	}
	for _, a := range items {
		_, err := r.db.Exec(ctx,
			"INSERT INTO about_items (title, description) VALUES ($1, $2)",
			a.Title, a.Description,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert about item")
		}
	}
	return nil
}

func (r *ContentRepository) ReplaceAdvantages(ctx context.Context, items []model.AdvantageInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM advantages"); err != nil {
		return errors.Wrap(err, "failed to clear advantages")
	}
	for _, a := range items {
		_, err := r.db.Exec(ctx,
			"INSERT INTO advantages (icon, title, description) VALUES ($1, $2, $3)",
			a.Icon, a.Title, a.Description,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert advantage")
		}
	}
	return nil
}

func (r *ContentRepository) ReplacePartners(ctx context.Context, items []model.PartnerInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM partners"); err != nil {
		return errors.Wrap(err, "failed to clear partners")
	}
	for _, p := range items {
		_, err := r.db.Exec(ctx,
			"INSERT INTO partners (name, logo_url) VALUES ($1, $2)",
			p.Name, p.LogoURL,
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert partner")
		}
	}
	return nil
}

// ReplaceHero leaves exactly one hero row.
func (r *ContentRepository) ReplaceHero(ctx context.Context, hero model.HeroInput) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM hero_section"); err != nil {
		return errors.Wrap(err, "failed to clear hero section")
	}
	_, err := r.db.Exec(ctx,
		"INSERT INTO hero_section (title, highlighted_text, subtitle, description, image_url) VALUES ($1, $2, $3, $4, $5)",
		hero.Title, hero.HighlightedText, hero.Subtitle, hero.Description, hero.ImageURL,
	)
	return errors.Wrap(err, "failed to insert hero section")
}
