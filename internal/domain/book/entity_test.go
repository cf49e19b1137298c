package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	assert.Equal(t, "https://i.ibb.co/abc/cover.jpg", NormalizeImageURL("https://i.ibb.co.com/abc/cover.jpg"))
	assert.Equal(t, "https://i.ibb.co/abc/cover.jpg", NormalizeImageURL("https://i.ibb.co/abc/cover.jpg"))
	assert.Equal(t, "", NormalizeImageURL(""))
}

func TestRemoteBook_ToBook(t *testing.T) {
	t.Run("imageUrl兜底并修正域名", func(t *testing.T) {
		b := RemoteBook{
			ID:       "1",
			Title:    "War and Peace",
			Price:    decimal.NewFromInt(20),
			ImageURL: "https://i.ibb.co.com/x.png",
		}.ToBook()

		assert.Equal(t, "https://i.ibb.co/x.png", b.Image)
		assert.Equal(t, 0, b.Quantity)
	})

	t.Run("image优先", func(t *testing.T) {
		qty := 7
		b := RemoteBook{Image: "a.png", ImageURL: "b.png", Quantity: &qty}.ToBook()
		assert.Equal(t, "a.png", b.Image)
		assert.Equal(t, 7, b.Quantity)
	})
}
