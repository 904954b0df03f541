package repository

import (
	"context"
	"time"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT email, password_hash, name, role, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadUserProducts(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail matches case-insensitively; the email index is on lower(email).
func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, version
		FROM users WHERE lower(email) = lower($1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{}

	dst := []any{&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadUserProducts(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) loadUserProducts(ctx context.Context, user *domain.User) error {
	query := `
		SELECT product_id FROM user_products WHERE user_id = $1
	`

	rows, err := r.dbpool.QueryContext(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	user.Products = make([]string, 0)
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return err
		}
		user.Products = append(user.Products, productID)
	}

	return rows.Err()
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{user.Email, user.PasswordHash, user.Name, user.Role}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO user_products (user_id, product_id) VALUES ($1, $2)
	`
	for _, productID := range user.Products {
		if _, err := tx.ExecContext(ctx, query, user.ID, productID); err != nil {
			return err
		}
	}

	if user.Products == nil {
		user.Products = make([]string, 0)
	}

	return tx.Commit()
}

// UpdateUser writes the whole record back under an optimistic version check
// and replaces the product assignment set in the same transaction.
func (r *Repository) UpdateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE users
		SET
			email = $1,
			password_hash = $2,
			name = $3,
			role = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	args := []any{user.Email, user.PasswordHash, user.Name, user.Role, user.ID, user.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.Version); err != nil {
		return err
	}

	// replace the assignment set wholesale
	query = `DELETE FROM user_products WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, query, user.ID); err != nil {
		return err
	}

	query = `INSERT INTO user_products (user_id, product_id) VALUES ($1, $2)`
	for _, productID := range user.Products {
		if _, err := tx.ExecContext(ctx, query, user.ID, productID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteUser reports whether a record existed. Product assignments cascade.
func (r *Repository) DeleteUser(id int64) (bool, error) {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.role, u.created_at, u.version, up.product_id
		FROM users u
		LEFT JOIN user_products up ON u.id = up.user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usersMap := make(map[int64]*domain.User)
	order := make([]int64, 0)

	for rows.Next() {
		user := &domain.User{}
		var productID *string

		dst := []any{&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.CreatedAt, &user.Version, &productID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := usersMap[user.ID]; !exists {
			user.Products = make([]string, 0)
			usersMap[user.ID] = user
			order = append(order, user.ID)
		}

		if productID != nil {
			usersMap[user.ID].Products = append(usersMap[user.ID].Products, *productID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(order))
	for _, id := range order {
		users = append(users, usersMap[id])
	}

	return users, nil
}
