package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttons(n int) []models.InlineKeyboardButton {
	result := make([]models.InlineKeyboardButton, n)
	for i := range result {
		result[i] = Label("b")
	}
	return result
}

func TestGrid(t *testing.T) {
	markup := NewBuilder().Grid(buttons(10), 4).Build()

	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 4)
	assert.Len(t, markup.InlineKeyboard[1], 4)
	assert.Len(t, markup.InlineKeyboard[2], 2)
}

func TestGridEmpty(t *testing.T) {
	markup := NewBuilder().Grid(nil, 4).AddBackToMainButton().Build()

	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, BackToMainData, markup.InlineKeyboard[0][0].CallbackData)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		want              Window
	}{
		{"empty", 0, 3, 40, Window{Pages: 1}},
		{"single page", 12, 0, 40, Window{Page: 0, Pages: 1, Start: 0, End: 12}},
		{"last partial page", 95, 2, 40, Window{Page: 2, Pages: 3, Start: 80, End: 95}},
		{"page above range", 95, 7, 40, Window{Page: 2, Pages: 3, Start: 80, End: 95}},
		{"negative page", 95, -1, 40, Window{Page: 0, Pages: 3, Start: 0, End: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Page(tt.total, tt.page, tt.size))
		})
	}
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("slots_page:7:2025-03-10:", Page(12, 0, 40)))

	first := PaginationButtons("slots_page:7:2025-03-10:", Page(95, 0, 40))
	require.Len(t, first, 2)
	assert.Equal(t, "📄 1/3", first[0].Text)
	assert.Equal(t, NoopData, first[0].CallbackData)
	assert.Equal(t, "slots_page:7:2025-03-10:1", first[1].CallbackData)

	middle := PaginationButtons("p:", Page(95, 1, 40))
	require.Len(t, middle, 3)
	assert.Equal(t, "p:0", middle[0].CallbackData)
	assert.Equal(t, "p:2", middle[2].CallbackData)

	last := PaginationButtons("p:", Page(95, 2, 40))
	require.Len(t, last, 2)
	assert.Equal(t, "p:1", last[0].CallbackData)
}

func TestAddConfirmCancel(t *testing.T) {
	markup := NewBuilder().AddConfirmCancel("✅ Да", "confirm_cancel:5", "my_bookings").Build()

	require.Len(t, markup.InlineKeyboard, 1)
	row := markup.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "confirm_cancel:5", row[0].CallbackData)
	assert.Equal(t, "my_bookings", row[1].CallbackData)
}
