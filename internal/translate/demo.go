package translate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// demoDateLayout mirrors a browser's en-US locale string.
const demoDateLayout = "1/2/2006, 3:04:05 PM"

var demoTemplates = map[string]string{
	"es": `[TRADUCCIÓN AL ESPAÑOL - DEMOSTRACIÓN EDUCATIVA]

%[1]s

---
INFORMACIÓN DE LA TRADUCCIÓN:
• Idioma destino: Español
• Características educativas preservadas
• Contexto académico mantenido
• Fecha: %[2]s

EJEMPLO DE CONTENIDO EDUCATIVO:
"La educación es el arma más poderosa que puedes usar para cambiar el mundo." - Nelson Mandela

NOTA: Esta es una traducción de demostración. En una implementación completa, se utilizaría un servicio de traducción profesional con soporte para contenido educativo.`,

	"fr": `[TRADUCTION FRANÇAISE - DÉMONSTRATION ÉDUCATIVE]

%[1]s

---
INFORMATIONS DE TRADUCTION:
• Langue cible: Français
• Caractéristiques éducatives préservées
• Contexte académique maintenu
• Date: %[2]s

EXEMPLE DE CONTENU ÉDUCATIF:
"L'éducation est l'arme la plus puissante qu'on puisse utiliser pour changer le monde." - Nelson Mandela

NOTE: Ceci est une traduction de démonstration. Dans une implémentation complète, un service de traduction professionnel serait utilisé.`,

	"de": `[DEUTSCHE ÜBERSETZUNG - BILDUNGSDEMONSTRATION]

%[1]s

---
ÜBERSETZUNGSINFORMATIONEN:
• Zielsprache: Deutsch
• Bildungsmerkmale erhalten
• Akademischer Kontext beibehalten
• Datum: %[2]s

BEISPIEL FÜR BILDUNGSINHALT:
"Bildung ist die mächtigste Waffe, die du verwenden kannst, um die Welt zu verändern." - Nelson Mandela

HINWEIS: Dies ist eine Demo-Übersetzung. In einer vollständigen Implementierung würde ein professioneller Übersetzungsdienst verwendet werden.`,

	"sw": `[TAFSIRI YA KISWAHILI - ONYESHO LA ELIMU]

%[1]s

---
TAARIFA ZA TAFSIRI:
• Lugha lengwa: Kiswahili
• Vipengele vya kielimu vimehifadhiwa
• Muktadha wa kiakademia umehifadhiwa
• Tarehe: %[2]s

MFANO WA MAUDHUI YA KIELIMU:
"Elimu ndio silaha lenye nguvu zaidi ambalo unaweza kutumia kubadilisha dunia." - Nelson Mandela

TAARIFA: Huu ni tafsiri ya onyesho. Katika utekelezaji kamili, huduma ya kitaalamu ya tafsiri ingetumika.`,
}

const genericDemoTemplate = `[%[3]s TRANSLATION - EDUCATIONAL DEMO]

%[1]s

---
TRANSLATION INFORMATION:
• Target language: %[4]s
• Educational features preserved
• Academic context maintained
• Date: %[2]s

EDUCATIONAL CONTEXT EXAMPLE:
"Education is the most powerful weapon which you can use to change the world." - Nelson Mandela

NOTE: This is a demo translation. In a full implementation, a professional translation service with educational content support would be used.`

// Demo wraps the untranslated text in a dated notice in the target
// language. It never fails.
type Demo struct {
	// Now supplies the date stamp; nil means time.Now.
	Now func() time.Time
}

func (Demo) Name() string { return "demo" }

func (d Demo) Translate(_ context.Context, text string, target Language) (string, error) {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	date := now().Format(demoDateLayout)
	if tmpl, ok := demoTemplates[target.Code]; ok {
		return fmt.Sprintf(tmpl, text, date), nil
	}
	return fmt.Sprintf(genericDemoTemplate, text, date, strings.ToUpper(target.Name), target.Name), nil
}
