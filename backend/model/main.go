package model

import (
	"optiwave/backend/common"

	"github.com/burugo/thing"
	redisCache "github.com/burugo/thing/drivers/cache/redis"
	"github.com/burugo/thing/drivers/db/sqlite"
)

// dbAdapter is kept for queries the chainable builder cannot express
// (multi-placeholder conditions, raw column reads).
var dbAdapter thing.DBAdapter

func createRootAccountIfNeed() error {
	users, err := UserDB.Query(thing.QueryParams{}).Fetch(0, 1)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		common.SysLog("no user exists, create a root user for you: email is root@localhost, password is 123456")
		hashedPassword, err := common.Password2Hash("123456")
		if err != nil {
			return err
		}
		rootUser := &User{
			Email:       "root@localhost",
			Password:    hashedPassword,
			DisplayName: "Root User",
			Role:        common.RoleRootUser,
			Status:      common.UserStatusEnabled,
		}
		if err := UserDB.Save(rootUser); err != nil {
			return err
		}
	}
	return nil
}

func InitDB() (err error) {
	dbAdapter, err = sqlite.NewSQLiteAdapter(common.SQLitePath)
	if err != nil {
		return err
	}
	var cacheClient thing.CacheClient = nil
	if common.RedisEnabled && common.RDB != nil {
		cacheClient, err = redisCache.NewClient(common.RDB, nil)
		if err != nil {
			return err
		}
	}
	thing.Configure(dbAdapter, cacheClient)

	// 1. AutoMigrate all models first
	err = thing.AutoMigrate(&User{}, &Video{})
	if err != nil {
		return err
	}

	// 2. Initialize all ORM instances
	if err := UserInit(); err != nil {
		return err
	}
	if err := VideoInit(); err != nil {
		return err
	}

	// 3. Data-dependent setup
	return createRootAccountIfNeed()
}

func CloseDB() error {
	// Thing ORM does not require an explicit close.
	return nil
}
