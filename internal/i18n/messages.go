package i18n

import "golang.org/x/text/language"

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"error.title":       "Something went wrong",
		"error.description": "The %s command ran into a problem. If you report it, include this ID: `%s`",

		"invalid.title":       "Unknown subcommand",
		"invalid.description": "I do not recognise that subcommand. Try `/currency about`.",

		"notice.slow_down": "Slow down! You can play again in a moment.",
		"common.balance":   "Balance",

		"daily.title":     "Daily Claim",
		"daily.claimed":   "You claimed %d BeccaCoin! Your balance is now %d.",
		"daily.cooldown":  "You already claimed your daily reward. Come back in %s.",
		"weekly.title":    "Weekly Claim",
		"weekly.claimed":  "You claimed %d BeccaCoin! Your balance is now %d.",
		"weekly.cooldown": "You already claimed your weekly reward. Come back in %s.",

		"view.title":     "Your BeccaCoin",
		"view.daily":     "Daily",
		"view.weekly":    "Weekly",
		"view.available": "Available now",
		"view.remaining": "Available in %s",
		"view.slots":     "Slots played",
		"view.twentyone": "21 played",
		"view.guess":     "Guesses played",

		"claim.title":        "Reward Claimed",
		"claim.success":      "You spent %d BeccaCoin on %s. Your balance is now %d.",
		"claim.insufficient": "%s costs %d BeccaCoin but you only have %d.",
		"claim.unknown":      "That reward does not exist.",
		"claim.notice_title": "New reward claim",
		"claim.notice":       "<@%s> claimed %s for %d BeccaCoin.",

		"reward.monarch-colour": "a new colour for the Monarch role",
		"reward.monarch":        "the Monarch role",
		"reward.wealthy-colour": "a new colour for the Wealthy role",
		"reward.wealthy":        "the Wealthy role",

		"about.title": "About BeccaCoin",
		"about.description": "BeccaCoin is earned with `/currency daily` (every 24 hours) and `/currency weekly` (every 7 days). " +
			"Wager it on `/currency slots`, `/currency 21` or `/currency guess`, check your balance with `/currency view`, " +
			"and spend it on rewards with `/currency claim`.",

		"wager.invalid":      "Your wager must be at least 1 BeccaCoin.",
		"wager.insufficient": "You tried to wager %d BeccaCoin but you only have %d.",

		"slots.title":   "Slots",
		"slots.jackpot": "Jackpot! You won %d BeccaCoin.",
		"slots.win":     "Two of a kind! You won %d BeccaCoin.",
		"slots.loss":    "No match. You lost %d BeccaCoin.",

		"twentyone.title":     "21",
		"twentyone.player":    "Your hand (%d)",
		"twentyone.dealer":    "Becca's hand (%d)",
		"twentyone.blackjack": "Blackjack! You won %d BeccaCoin.",
		"twentyone.win":       "You won %d BeccaCoin.",
		"twentyone.push":      "It's a tie. Your wager is returned.",
		"twentyone.loss":      "Becca wins. You lost %d BeccaCoin.",

		"guess.title":  "Guess the Number",
		"guess.range":  "Your guess must be between 1 and 100.",
		"guess.result": "You guessed %d and the number was %d.",
		"guess.exact":  "Perfect guess! You won %d BeccaCoin.",
		"guess.close":  "Close! You won %d BeccaCoin.",
		"guess.push":   "Not bad. Your wager is returned.",
		"guess.loss":   "Too far off. You lost %d BeccaCoin.",
	},
	language.Spanish: {
		"error.title":       "Algo salió mal",
		"error.description": "El comando %s tuvo un problema. Si lo reportas, incluye este ID: `%s`",

		"invalid.title":       "Subcomando desconocido",
		"invalid.description": "No reconozco ese subcomando. Prueba `/currency about`.",

		"notice.slow_down": "¡Más despacio! Podrás jugar de nuevo en un momento.",
		"common.balance":   "Saldo",

		"daily.title":     "Recompensa diaria",
		"daily.claimed":   "¡Reclamaste %d BeccaCoin! Tu saldo ahora es %d.",
		"daily.cooldown":  "Ya reclamaste tu recompensa diaria. Vuelve en %s.",
		"weekly.title":    "Recompensa semanal",
		"weekly.claimed":  "¡Reclamaste %d BeccaCoin! Tu saldo ahora es %d.",
		"weekly.cooldown": "Ya reclamaste tu recompensa semanal. Vuelve en %s.",

		"view.title":     "Tus BeccaCoin",
		"view.daily":     "Diaria",
		"view.weekly":    "Semanal",
		"view.available": "Disponible ahora",
		"view.remaining": "Disponible en %s",
		"view.slots":     "Tragamonedas jugadas",
		"view.twentyone": "Partidas de 21",
		"view.guess":     "Adivinanzas jugadas",

		"claim.title":        "Recompensa reclamada",
		"claim.success":      "Gastaste %d BeccaCoin en %s. Tu saldo ahora es %d.",
		"claim.insufficient": "%s cuesta %d BeccaCoin pero solo tienes %d.",
		"claim.unknown":      "Esa recompensa no existe.",
		"claim.notice_title": "Nueva recompensa reclamada",
		"claim.notice":       "<@%s> reclamó %s por %d BeccaCoin.",

		"reward.monarch-colour": "un nuevo color para el rol Monarch",
		"reward.monarch":        "el rol Monarch",
		"reward.wealthy-colour": "un nuevo color para el rol Wealthy",
		"reward.wealthy":        "el rol Wealthy",

		"about.title": "Acerca de BeccaCoin",
		"about.description": "Gana BeccaCoin con `/currency daily` (cada 24 horas) y `/currency weekly` (cada 7 días). " +
			"Apuéstalas en `/currency slots`, `/currency 21` o `/currency guess`, revisa tu saldo con `/currency view` " +
			"y gástalas en recompensas con `/currency claim`.",

		"wager.invalid":      "Tu apuesta debe ser de al menos 1 BeccaCoin.",
		"wager.insufficient": "Intentaste apostar %d BeccaCoin pero solo tienes %d.",

		"slots.title":   "Tragamonedas",
		"slots.jackpot": "¡Premio mayor! Ganaste %d BeccaCoin.",
		"slots.win":     "¡Dos iguales! Ganaste %d BeccaCoin.",
		"slots.loss":    "Sin coincidencias. Perdiste %d BeccaCoin.",

		"twentyone.title":     "21",
		"twentyone.player":    "Tu mano (%d)",
		"twentyone.dealer":    "La mano de Becca (%d)",
		"twentyone.blackjack": "¡Blackjack! Ganaste %d BeccaCoin.",
		"twentyone.win":       "Ganaste %d BeccaCoin.",
		"twentyone.push":      "Empate. Recuperas tu apuesta.",
		"twentyone.loss":      "Becca gana. Perdiste %d BeccaCoin.",

		"guess.title":  "Adivina el número",
		"guess.range":  "Tu número debe estar entre 1 y 100.",
		"guess.result": "Elegiste %d y el número era %d.",
		"guess.exact":  "¡Adivinaste! Ganaste %d BeccaCoin.",
		"guess.close":  "¡Cerca! Ganaste %d BeccaCoin.",
		"guess.push":   "Nada mal. Recuperas tu apuesta.",
		"guess.loss":   "Muy lejos. Perdiste %d BeccaCoin.",
	},
}
