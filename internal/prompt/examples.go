package prompt

import "ai-teacher/internal/lang"

// Example is a canonical vocabulary answer used to anchor the output format.
// Target is the language the example translates into.
type Example struct {
	Literal string        `yaml:"literal"`
	Target  lang.Language `yaml:"target"`
}

var defaultExamples = map[lang.Language]Example{
	lang.German: {
		Target:  lang.Italian,
		Literal: `[["Die Urlaube", "Vacanza", "Wir planen unsere Urlaube im Sommer", "Pianifichiamo le nostre vacanze in estate"], ["sehen", "vedere", "Er kann sie sehen", "Lui può vederla"], ["gehen", "andare", "Ich will heute gehen", "Voglio andare oggi"], ["Das Wetter", "il tempo", "Das Wetter heute ist warm", "Il tempo oggi è caldo"]]`,
	},
	lang.English: {
		Target:  lang.Italian,
		Literal: `[["Holiday", "Vacanza", "We plan our holidays in summer", "Pianifichiamo le nostre vacanze in estate"], ["see", "vedere", "He can see her", "Lui può vederla"], ["go", "andare", "I want to go today", "Voglio andare oggi"], ["Weather", "il tempo", "The weather today is warm", "Il tempo oggi è caldo"]]`,
	},
	lang.French: {
		Target:  lang.Italian,
		Literal: `[["Vacances", "Vacanza", "Nous planifions nos vacances en été", "Pianifichiamo le nostre vacanze in estate"], ["voir", "vedere", "Il peut la voir", "Lui può vederla"], ["aller", "andare", "Je veux aller aujourd'hui", "Voglio andare oggi"], ["Le temps", "il tempo", "Le temps aujourd'hui est chaud", "Il tempo oggi è caldo"]]`,
	},
	lang.Spanish: {
		Target:  lang.Italian,
		Literal: `[["Vacaciones", "Vacanza", "Planeamos nuestras vacaciones en verano", "Pianifichiamo le nostre vacanze in estate"], ["ver", "vedere", "Él puede verla", "Lui può vederla"], ["ir", "andare", "Quiero ir hoy", "Voglio andare oggi"], ["El clima", "il tempo", "El clima de hoy es cálido", "Il tempo oggi è caldo"]]`,
	},
	lang.Italian: {
		Target:  lang.English,
		Literal: `[["Le vacanze", "Holidays", "Pianifichiamo le nostre vacanze in estate", "We plan our holidays in summer"], ["vedere", "see", "Lui può vederla", "He can see her"], ["andare", "go", "Voglio andare oggi", "I want to go today"], ["Il tempo", "Weather", "Il tempo oggi è caldo", "The weather today is warm"]]`,
	},
}
