package model

import (
	"context"
	"errors"

	"optiwave/backend/common"

	"github.com/burugo/thing"
)

// User represents a registered account. Accounts are created on registration
// and never mutated or deleted by the catalog itself; videos reference them
// by user_id. Sensitive fields are excluded from API responses.
type User struct {
	thing.BaseModel
	Email       string `db:"email,unique" json:"email" validate:"required,email"`
	Password    string `db:"password" json:"-" validate:"required,min=6"`
	DisplayName string `db:"display_name" json:"name" validate:"required,max=50"`
	Role        int    `db:"role" json:"role"`
	Status      int    `db:"status" json:"status"`
}

func (u *User) TableName() string {
	return "users"
}

var UserDB *thing.Thing[*User]

// UserInit initializes UserDB during InitDB.
func UserInit() error {
	var err error
	UserDB, err = thing.Use[*User]()
	if err != nil {
		return err
	}
	return nil
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, errors.New("user id is empty")
	}
	user, err := UserDB.ByID(id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func IsEmailAlreadyTaken(email string) bool {
	users, err := UserDB.Where("email = ?", email).Fetch(0, 1)
	return err == nil && len(users) > 0
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return UserDB.Save(user)
}

// passwordHashByID reads the bcrypt hash straight from the table. Cached
// models travel through encoding/json, which strips the hash along with the
// other json:"-" fields, so the cache copy never carries it.
func passwordHashByID(id int64) (string, error) {
	var row struct {
		Password string `db:"password"`
	}
	err := dbAdapter.Get(context.Background(), &row, "SELECT password FROM users WHERE id = ?", id)
	return row.Password, err
}

// ValidateAndFill checks the email/password pair and loads the stored user
// into the receiver on success.
func (user *User) ValidateAndFill() error {
	if user.Email == "" || user.Password == "" {
		return errors.New("email or password is empty")
	}
	password := user.Password
	users, err := UserDB.Where("email = ?", user.Email).Fetch(0, 1)
	if err != nil || len(users) == 0 {
		return errors.New("invalid email or password, or the account is disabled")
	}
	found := users[0]
	hash, err := passwordHashByID(found.ID)
	if err != nil {
		return errors.New("invalid email or password, or the account is disabled")
	}
	if !common.ValidatePasswordAndHash(password, hash) || found.Status != common.UserStatusEnabled {
		return errors.New("invalid email or password, or the account is disabled")
	}
	*user = *found
	return nil
}
