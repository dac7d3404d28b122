package commands

import (
	"github.com/bwmarrin/discordgo"
)

// Rewards purchasable with /currency claim, in display order
var Rewards = []string{"monarch-colour", "monarch", "wealthy-colour", "wealthy"}

// RewardCosts is the price of each reward
var RewardCosts = map[string]int64{
	"monarch-colour": 2500,
	"monarch":        5000,
	"wealthy-colour": 7500,
	"wealthy":        10000,
}

var rewardNames = map[string]string{
	"monarch-colour": "Monarch Colour",
	"monarch":        "Monarch Role",
	"wealthy-colour": "Wealthy Colour",
	"wealthy":        "Wealthy Role",
}

// Command returns the command definition for /currency
func (c *CurrencyCommand) Command() *discordgo.ApplicationCommand {
	dmPermission := false

	rewardChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(Rewards))
	for _, reward := range Rewards {
		rewardChoices = append(rewardChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  rewardNames[reward],
			Value: reward,
		})
	}

	wager := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "wager",
		Description: "How much BeccaCoin to wager.",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:         CurrencyCommandName,
		Description:  "Commands for the BeccaCoin economy.",
		DMPermission: &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "daily",
				Description: "Claim your daily BeccaCoin.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "weekly",
				Description: "Claim your weekly BeccaCoin.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "view",
				Description: "View your BeccaCoin balance and claim timers.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "claim",
				Description: "Spend your BeccaCoin on a reward.",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "reward",
						Description: "The reward to claim.",
						Required:    true,
						Choices:     rewardChoices,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "about",
				Description: "Learn how the BeccaCoin economy works.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "slots",
				Description: "Wager BeccaCoin on a spin of the slots.",
				Options:     []*discordgo.ApplicationCommandOption{wager},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "21",
				Description: "Wager BeccaCoin on a hand of 21 against Becca.",
				Options:     []*discordgo.ApplicationCommandOption{wager},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "guess",
				Description: "Wager BeccaCoin on guessing a number from 1 to 100.",
				Options: []*discordgo.ApplicationCommandOption{
					wager,
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "guess",
						Description: "Your guess.",
						Required:    true,
					},
				},
			},
		},
	}
}
