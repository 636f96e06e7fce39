package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/models"
	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/bwmarrin/discordgo"
)

const (
	colorInfo  = 0x3498db
	colorWin   = 0x00ff00
	colorLose  = 0xe67e22
	colorError = 0xff0000
)

// dieFaces indexes the die emoji by outcome
var dieFaces = [...]string{"", "⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

func dieFace(outcome int) string {
	if outcome < 1 || outcome >= len(dieFaces) {
		return "?"
	}
	return dieFaces[outcome]
}

func renderCommitment(hash string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Server seed committed",
		Description: "Roll with `/dice roll`. The seed behind this hash is revealed with the result.",
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Server seed hash", Value: "`" + hash + "`"},
		},
	}
}

func renderRoll(out *roll.PlaceRollOutput) *discordgo.MessageEmbed {
	record := out.Record

	title := fmt.Sprintf("%s You rolled a %d and lost %d", dieFace(record.Outcome), record.Outcome, record.Wager)
	color := colorLose
	if record.Won() {
		title = fmt.Sprintf("%s You rolled a %d and won %d", dieFace(record.Outcome), record.Outcome, record.Payout)
		color = colorWin
	}

	return &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: fmt.Sprintf("%d", out.NewBalance), Inline: true},
			{Name: "Wager", Value: fmt.Sprintf("%d", record.Wager), Inline: true},
			{Name: "Client seed", Value: "`" + record.ClientSeed + "`"},
			{Name: "Server seed", Value: "`" + record.ServerSeed + "`"},
			{Name: "Server seed hash", Value: "`" + record.ServerSeedHash + "`"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Roll " + record.ID},
	}
}

func renderBalance(balance int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Balance",
		Description: fmt.Sprintf("You have **%d** credits.", balance),
		Color:       colorInfo,
	}
}

func renderVerification(out *roll.VerifyRollOutput) *discordgo.MessageEmbed {
	verdict := "✅ Verified"
	color := colorWin
	if !out.Match || !out.HashMatch {
		verdict = "❌ Verification failed"
		color = colorError
	}

	return &discordgo.MessageEmbed{
		Title: verdict,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Recorded roll", Value: fmt.Sprintf("%d", out.Record.Outcome), Inline: true},
			{Name: "Recomputed roll", Value: fmt.Sprintf("%d", out.RecomputedOutcome), Inline: true},
			{Name: "Seed matches hash", Value: yesNo(out.HashMatch), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Roll " + out.Record.ID},
	}
}

func renderHistory(records []*models.RollRecord) *discordgo.MessageEmbed {
	if len(records) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Recent rolls",
			Description: "No rolls yet. Start with `/dice commit`.",
			Color:       colorInfo,
		}
	}

	var b strings.Builder
	for _, r := range records {
		sign := "-"
		amount := r.Wager
		if r.Won() {
			sign = "+"
			amount = r.Payout - r.Wager
		}
		fmt.Fprintf(&b, "%s **%d** %s%d → %d `%s`\n", dieFace(r.Outcome), r.Outcome, sign, amount, r.BalanceAfter, r.ID)
	}

	return &discordgo.MessageEmbed{
		Title:       "Recent rolls",
		Description: b.String(),
		Color:       colorInfo,
	}
}

// errorMessage turns a service error into something safe to show a player
func errorMessage(err error) string {
	var fe *fault.Error
	if !errors.As(err, &fe) || fe.Kind() == fault.KindInternal {
		return "Something went wrong. Try again in a moment."
	}

	switch fe.Code {
	case fault.CodeNoCommitmentAvailable:
		return "You need a server seed hash first. Use `/dice commit`."
	case fault.CodeCommitmentAlreadyOutstanding:
		return "You already have a pending server seed hash. Roll with `/dice roll` to use it."
	case fault.CodeInsufficientBalance:
		return "You don't have enough credits for that wager."
	default:
		return fe.Message
	}
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
