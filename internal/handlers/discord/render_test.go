package discord

import (
	"testing"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/stretchr/testify/assert"
)

func TestDieFace(t *testing.T) {
	assert.Equal(t, "⚀", dieFace(1))
	assert.Equal(t, "⚅", dieFace(6))
	assert.Equal(t, "?", dieFace(0))
	assert.Equal(t, "?", dieFace(7))
}

func TestRenderRollLoss(t *testing.T) {
	embed := renderRoll(&roll.PlaceRollOutput{
		Record: &models.RollRecord{
			ID:      "roll-1",
			Wager:   50,
			Outcome: 2,
			Result:  models.RollResultLose,
		},
		NewBalance: 950,
	})

	assert.Contains(t, embed.Title, "lost 50")
	assert.Equal(t, colorLose, embed.Color)
	assert.Equal(t, "950", embed.Fields[0].Value)
	assert.Equal(t, "Roll roll-1", embed.Footer.Text)
}

func TestRenderHistory(t *testing.T) {
	empty := renderHistory(nil)
	assert.Contains(t, empty.Description, "No rolls yet")

	embed := renderHistory([]*models.RollRecord{
		{ID: "roll-2", Wager: 10, Outcome: 6, Result: models.RollResultWin, Payout: 20, BalanceAfter: 1010},
		{ID: "roll-1", Wager: 10, Outcome: 1, Result: models.RollResultLose, BalanceAfter: 990},
	})
	assert.Contains(t, embed.Description, "+10 → 1010 `roll-2`")
	assert.Contains(t, embed.Description, "-10 → 990 `roll-1`")
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, errorMessage(fault.ErrInsufficientBalance.With("wager", 10)), "enough credits")
	assert.Equal(t, fault.ErrInvalidWager.Message, errorMessage(fault.ErrInvalidWager))
	assert.Contains(t, errorMessage(fault.ErrLedgerContention), "Something went wrong")
}
