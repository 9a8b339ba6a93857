package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nextorder/promo-engine/pkg/config"
)

type txRow struct {
	ID    int64 `gorm:"primaryKey"`
	Value string
}

func setupClient(t *testing.T) *Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&txRow{}))
	return &Client{conn: conn}
}

func TestNewRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}

func TestWithTxCommits(t *testing.T) {
	client := setupClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&txRow{Value: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.DB().Model(&txRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := setupClient(t)
	boom := errors.New("boom")

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&txRow{Value: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.DB().Model(&txRow{}).Count(&count).Error)
	assert.Zero(t, count)
}
