package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// Window границы страницы в списке из total элементов
type Window struct {
	Page  int // 0-based, приведена к допустимому диапазону
	Pages int
	Start int
	End   int
}

// Page вычисляет окно страницы page при размере страницы size.
// Номер вне диапазона прижимается к первой или последней странице.
func Page(total, page, size int) Window {
	if total <= 0 || size <= 0 {
		return Window{Pages: 1}
	}

	pages := (total + size - 1) / size
	page = max(0, min(page, pages-1))
	start := page * size

	return Window{
		Page:  page,
		Pages: pages,
		Start: start,
		End:   min(start+size, total),
	}
}

// PaginationButtons ряд "⬅️ 📄 n/m ➡️".
// prefix дополняется номером страницы, например "slots_page:7:2025-03-10:" + "1".
func PaginationButtons(prefix string, w Window) []models.InlineKeyboardButton {
	if w.Pages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton
	if w.Page > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, w.Page-1)))
	}
	buttons = append(buttons, Label(fmt.Sprintf("📄 %d/%d", w.Page+1, w.Pages)))
	if w.Page < w.Pages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, w.Page+1)))
	}

	return buttons
}

func (b *Builder) AddPagination(prefix string, w Window) *Builder {
	return b.Row(PaginationButtons(prefix, w)...)
}
