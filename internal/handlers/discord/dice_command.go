package discord

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/fairdice/internal/common/fault"
	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Button IDs
const (
	ButtonCommit = "dice_commit"
)

const historyLimit = 10

// DiceCommand handles the /dice command
type DiceCommand struct {
	BaseCommand
	rollService roll.Service
	logger      *zap.Logger
}

// NewDiceCommand creates a new dice command handler
func NewDiceCommand(rollService roll.Service, logger *zap.Logger) *DiceCommand {
	if logger == nil {
		logger = zap.NewNop()
	}

	minWager := float64(1)

	return &DiceCommand{
		BaseCommand: BaseCommand{
			Name:        "dice",
			Description: "Provably fair dice rolls",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "commit",
					Description: "Get the hash of the server seed for your next roll",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Wager credits on a roll of 4 or higher",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "wager",
							Description: "Credits to wager",
							Required:    true,
							MinValue:    &minWager,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "seed",
							Description: "Your client seed",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Show your credits",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "verify",
					Description: "Recompute a past roll from its seeds",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "roll_id",
							Description: "The roll to verify",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show your recent rolls",
				},
			},
		},
		rollService: rollService,
		logger:      logger,
	}
}

// CustomIDs returns the buttons this command answers
func (c *DiceCommand) CustomIDs() []string {
	return []string{ButtonCommit}
}

// Handle processes a Discord interaction for the dice command
func (c *DiceCommand) Handle(ctx context.Context, s Responder, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	accountID := userID(i)
	sub := data.Options[0]
	options := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		options[opt.Name] = opt
	}

	switch sub.Name {
	case "commit":
		return c.handleCommit(ctx, s, i, accountID)
	case "roll":
		var wager int64
		var seed string
		if opt, ok := options["wager"]; ok {
			wager = opt.IntValue()
		}
		if opt, ok := options["seed"]; ok {
			seed = opt.StringValue()
		}
		return c.handleRoll(ctx, s, i, accountID, wager, seed)
	case "balance":
		return c.handleBalance(ctx, s, i, accountID)
	case "verify":
		var rollID string
		if opt, ok := options["roll_id"]; ok {
			rollID = opt.StringValue()
		}
		return c.handleVerify(ctx, s, i, rollID)
	case "history":
		return c.handleHistory(ctx, s, i, accountID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

// HandleComponent processes the commit button shown under a roll
func (c *DiceCommand) HandleComponent(ctx context.Context, s Responder, i *discordgo.InteractionCreate) error {
	if i.MessageComponentData().CustomID != ButtonCommit {
		return nil
	}
	return c.handleCommit(ctx, s, i, userID(i))
}

func (c *DiceCommand) handleCommit(ctx context.Context, s Responder, i *discordgo.InteractionCreate, accountID string) error {
	out, err := c.rollService.IssueCommitment(ctx, &roll.IssueCommitmentInput{
		AccountID: accountID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderCommitment(out.ServerSeedHash))
}

func (c *DiceCommand) handleRoll(ctx context.Context, s Responder, i *discordgo.InteractionCreate, accountID string, wager int64, seed string) error {
	out, err := c.rollService.PlaceRoll(ctx, &roll.PlaceRollInput{
		AccountID:  accountID,
		Wager:      wager,
		ClientSeed: seed,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	commitButton := discordgo.Button{
		Label:    "Commit next roll",
		Style:    discordgo.PrimaryButton,
		CustomID: ButtonCommit,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎲",
		},
	}

	return RespondWithEmbed(s, i, renderRoll(out), commitButton)
}

func (c *DiceCommand) handleBalance(ctx context.Context, s Responder, i *discordgo.InteractionCreate, accountID string) error {
	out, err := c.rollService.GetBalance(ctx, &roll.GetBalanceInput{
		AccountID: accountID,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderBalance(out.Balance))
}

func (c *DiceCommand) handleVerify(ctx context.Context, s Responder, i *discordgo.InteractionCreate, rollID string) error {
	out, err := c.rollService.VerifyRoll(ctx, &roll.VerifyRollInput{
		RollID: rollID,
	})
	// A failed check still carries the result worth showing
	if err != nil && (out == nil || fault.KindOf(err) != fault.KindIntegrityFault) {
		return c.respondError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderVerification(out))
}

func (c *DiceCommand) handleHistory(ctx context.Context, s Responder, i *discordgo.InteractionCreate, accountID string) error {
	out, err := c.rollService.ListRolls(ctx, &roll.ListRollsInput{
		AccountID: accountID,
		Limit:     historyLimit,
	})
	if err != nil {
		return c.respondError(s, i, err)
	}

	return RespondWithEmbed(s, i, renderHistory(out.Records))
}

func (c *DiceCommand) respondError(s Responder, i *discordgo.InteractionCreate, err error) error {
	if fault.KindOf(err) == fault.KindInternal || fault.KindOf(err) == fault.KindIntegrityFault {
		c.logger.Error("dice command failed", zap.String("user_id", userID(i)), zap.Error(err))
	}
	return RespondWithError(s, i, errorMessage(err))
}
