package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

const rolesCollection = "roles"

type RoleRepository struct {
	coll     *mongo.Collection
	accounts *mongo.Collection
	ids      sequence
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		coll:     db.Collection(rolesCollection),
		accounts: db.Collection(accountsCollection),
		ids:      newSequence(db, rolesCollection),
	}
}

type mongoRole struct {
	ID        int64  `bson:"_id"`
	Name      string `bson:"name"`
	NameKey   string `bson:"name_key"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (m mongoRole) toDomain() *domain.Role {
	return &domain.Role{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: unixToTime(m.CreatedAt),
		UpdatedAt: unixToTime(m.UpdatedAt),
	}
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindNameByID(ctx context.Context, id int64) (string, error) {
	role, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return "", err
	}
	return role.Name, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name_key": domain.RoleNameKey(name)})
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_key", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var docs []mongoRole
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	out := make([]*domain.Role, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := mongoRole{
		ID:        id,
		Name:      role.Name,
		NameKey:   domain.RoleNameKey(role.Name),
		CreatedAt: role.CreatedAt.Unix(),
		UpdatedAt: role.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRoleName
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, role.ID, bson.M{"$set": bson.M{
		"name":       role.Name,
		"name_key":   domain.RoleNameKey(role.Name),
		"updated_at": role.UpdatedAt.Unix(),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRoleName
		}
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// Delete refuses roles still referenced by an account. MongoDB has no foreign
// keys, so the check and the delete are two separate operations.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.accounts.CountDocuments(ctx, bson.M{"role_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count accounts by role: %w", err)
	}
	if n > 0 {
		return domain.ErrRoleInUse
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name_key": domain.RoleNameKey(name)}
	if excludeID != 0 {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check role name: %w", err)
	}
	return n > 0, nil
}
