package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("profile not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatar_url"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, email, passwordHash, fullName string) (string, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE email=$1`, email).Scan(&n); err != nil {
		return "", err
	}
	if n > 0 {
		return "", ErrEmailTaken
	}
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO profiles(id, email, password_hash, full_name)
		VALUES ($1,$2,$3,$4)`, id, email, passwordHash, fullName)
	return id, err
}

func (r *Repo) Get(ctx context.Context, id string) (Profile, error) {
	var p Profile
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, COALESCE(username,''), COALESCE(full_name,''),
		       COALESCE(phone,''), COALESCE(address,''), COALESCE(avatar_url,'')
		FROM profiles WHERE id=$1`, id).
		Scan(&p.ID, &p.Email, &p.Username, &p.FullName, &p.Phone, &p.Address, &p.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// Credentials: utk login; balikin id + hash password.
func (r *Repo) Credentials(ctx context.Context, email string) (id, passwordHash string, err error) {
	err = r.DB.QueryRow(ctx, `SELECT id, password_hash FROM profiles WHERE email=$1`, email).
		Scan(&id, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return id, passwordHash, err
}

func (r *Repo) Update(ctx context.Context, p Profile) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE profiles SET username=$2, full_name=$3, phone=$4, address=$5, avatar_url=$6, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Username, p.FullName, p.Phone, p.Address, p.AvatarURL)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
