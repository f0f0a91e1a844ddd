package i18n

import "fmt"

type entry struct {
	en string
	es string
}

func (e entry) get(l Locale) string {
	if l == Spanish && e.es != "" {
		return e.es
	}
	return e.en
}

// T returns the string for key in locale l, falling back to English and then
// to the key itself. Args are applied with fmt.Sprintf.
func T(l Locale, key string, args ...any) string {
	e, ok := table[key]
	if !ok {
		return key
	}
	s := e.get(l)
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Has reports whether key is defined.
func Has(key string) bool {
	_, ok := table[key]
	return ok
}

// Keys returns every defined key, for tests and tooling.
func Keys() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	return out
}

var table = map[string]entry{
	// welcome and static text
	"welcome": {
		en: "📚 *Welcome to Tooley!*\n\nFree AI-powered lesson plans for teachers everywhere.\n%s\n*How to create a lesson:*\n\n📝 *Type* your request:\n\"Math lesson about fractions for 8-10 year olds\"\n\n🎤 *Send a voice message* describing what you need\n\n🔘 *Use guided mode* with /new\n\n*Commands:*\n/new - Start guided lesson creation\n/quick - Fast lesson (just topic + age)\n/browse - Browse lessons from other teachers\n/language - Change language\n/help - Tips and examples",
		es: "📚 *¡Bienvenido a Tooley!*\n\nPlanes de lección gratuitos con IA para docentes de todo el mundo.\n%s\n*Cómo crear una lección:*\n\n📝 *Escribe* tu pedido:\n\"Lección de matemáticas sobre fracciones para niños de 8 a 10 años\"\n\n🎤 *Envía un mensaje de voz* describiendo lo que necesitas\n\n🔘 *Usa el modo guiado* con /new\n\n*Comandos:*\n/new - Crear una lección paso a paso\n/quick - Lección rápida (tema + edad)\n/browse - Ver lecciones de otros docentes\n/language - Cambiar idioma\n/help - Consejos y ejemplos",
	},
	"welcome.stats": {
		en: "\n📊 *%d lessons* shared by teachers worldwide\n",
		es: "\n📊 *%d lecciones* compartidas por docentes de todo el mundo\n",
	},
	"help": {
		en: "📚 *Tooley - Help*\n\n*Creating Lessons:*\n\n1️⃣ *Quick way* - Just type or say:\n\"Science lesson about plants for 6-8 year olds in Kenya\"\n\"45-minute math class on multiplication, ages 10-12\"\n\n2️⃣ *Guided way* - Use /new\nI will ask you step-by-step:\n- Subject & Topic\n- Student ages\n- Class duration\n- Your country (for local examples)\n- Available materials\n- Teaching style\n\n*Output Options:*\n📋 Quick - Key points in chat (~200 words)\n📄 Standard - Full lesson plan as PDF\n📚 Full - PDF with quiz & extensions\n\n*Tips:*\n• Be specific about the topic\n• Mention your country for relevant examples\n• Say so if you have NO materials\n• You can always tweak after generating",
		es: "📚 *Tooley - Ayuda*\n\n*Crear lecciones:*\n\n1️⃣ *Forma rápida* - Escribe o di:\n\"Lección de ciencias sobre plantas para niños de 6 a 8 años en Kenia\"\n\"Clase de matemáticas de 45 minutos sobre multiplicación, edades 10-12\"\n\n2️⃣ *Forma guiada* - Usa /new\nTe preguntaré paso a paso:\n- Materia y tema\n- Edad de los estudiantes\n- Duración de la clase\n- Tu país (para ejemplos locales)\n- Materiales disponibles\n- Estilo de enseñanza\n\n*Opciones de salida:*\n📋 Rápida - Puntos clave en el chat (~200 palabras)\n📄 Estándar - Plan completo en PDF\n📚 Completa - PDF con cuestionario y extensiones\n\n*Consejos:*\n• Sé específico con el tema\n• Menciona tu país para ejemplos relevantes\n• Indica si NO tienes materiales\n• Siempre puedes ajustar después de generar",
	},
	"about": {
		en: "🛠 *About Tooley*\n\nTooley writes practical lesson plans for teachers in low-resource classrooms: informal schools, community centers and anywhere materials are scarce.\n\nLessons you choose to share join a free library that any teacher can browse with /browse.",
		es: "🛠 *Acerca de Tooley*\n\nTooley escribe planes de lección prácticos para docentes en aulas con pocos recursos: escuelas informales, centros comunitarios y cualquier lugar donde falten materiales.\n\nLas lecciones que decidas compartir se suman a una biblioteca gratuita que cualquier docente puede ver con /browse.",
	},
	"cancelled": {
		en: "Cancelled. Send /new whenever you're ready.",
		es: "Cancelado. Envía /new cuando quieras empezar.",
	},
	"fallback": {
		en: "Sorry, I didn't get that. Use the buttons above, or send /new to start over.",
		es: "Perdón, no entendí. Usa los botones de arriba o envía /new para empezar de nuevo.",
	},

	// buttons shared across screens
	"btn.create":      {en: "🆕 Create lesson", es: "🆕 Crear lección"},
	"btn.browse":      {en: "📚 Browse lessons", es: "📚 Ver lecciones"},
	"btn.language":    {en: "🌐 Language", es: "🌐 Idioma"},
	"btn.back":        {en: "« Back", es: "« Volver"},
	"btn.type_own":    {en: "✏️ Type my own...", es: "✏️ Escribir otro..."},
	"btn.cancel":      {en: "❌ Cancel", es: "❌ Cancelar"},
	"btn.customize":   {en: "🔘 Customize more...", es: "🔘 Personalizar más..."},
	"btn.tweak":       {en: "✏️ Tweak this", es: "✏️ Ajustar"},
	"btn.new_topic":   {en: "🔄 Different topic", es: "🔄 Otro tema"},
	"btn.new":         {en: "🆕 New lesson", es: "🆕 Nueva lección"},
	"btn.pdf":         {en: "📄 Get as PDF", es: "📄 Obtener PDF"},
	"btn.share":       {en: "🌍 Share with teachers", es: "🌍 Compartir con docentes"},
	"btn.keep":        {en: "🔒 Keep private", es: "🔒 Mantener privada"},
	"btn.search":      {en: "🔍 Search by subject", es: "🔍 Buscar por materia"},
	"btn.browse_more": {en: "📚 Browse more", es: "📚 Ver más"},
	"btn.get":         {en: "📄 Get: %s", es: "📄 Obtener: %s"},

	// language step
	"language.ask": {en: "🌐 Choose your language:", es: "🌐 Elige tu idioma:"},
	"language.set": {en: "✅ I will speak English from now on.", es: "✅ A partir de ahora hablaré en español."},

	// subject step
	"subject.ask":  {en: "📚 *Let's create a lesson plan!*\n\nWhat subject?", es: "📚 *¡Creemos un plan de lección!*\n\n¿Qué materia?"},
	"subject.type": {en: "Type the subject:", es: "Escribe la materia:"},

	"subject.Mathematics":    {en: "📐 Math", es: "📐 Matemáticas"},
	"subject.Reading":        {en: "📖 Reading", es: "📖 Lectura"},
	"subject.Science":        {en: "🔬 Science", es: "🔬 Ciencias"},
	"subject.Social Studies": {en: "🌍 Social Studies", es: "🌍 Estudios Sociales"},
	"subject.Arts":           {en: "🎨 Arts", es: "🎨 Artes"},
	"subject.Language":       {en: "📝 Language", es: "📝 Lengua"},

	// topic step
	"topic.ask":  {en: "📚 Subject: *%s*\n\nPick a topic or type your own:", es: "📚 Materia: *%s*\n\nElige un tema o escribe el tuyo:"},
	"topic.more": {en: "🔀 More ideas", es: "🔀 Más ideas"},
	"topic.type": {en: "📚 Subject: *%s*\n\n✏️ Type your topic:", es: "📚 Materia: *%s*\n\n✏️ Escribe tu tema:"},
	"topic.instead": {
		en: "📝 What topic would you like instead?",
		es: "📝 ¿Qué tema prefieres en su lugar?",
	},

	// ages step
	"ages.ask":   {en: "📝 Topic: *%s*\n\nWhat age are your students?", es: "📝 Tema: *%s*\n\n¿Qué edad tienen tus estudiantes?"},
	"ages.label": {en: "%s years", es: "%s años"},
	"ages.type":  {en: "Type the age range (for example 10-12):", es: "Escribe el rango de edad (por ejemplo 10-12):"},

	// duration step
	"duration.ask":   {en: "👥 Ages: *%s*\n\nHow long is your class?", es: "👥 Edades: *%s*\n\n¿Cuánto dura tu clase?"},
	"duration.label": {en: "%d min", es: "%d min"},
	"duration.type":  {en: "Type the class length in minutes:", es: "Escribe la duración de la clase en minutos:"},

	// country step
	"country.ask":  {en: "⏱ Duration: *%s minutes*\n\nWhat country? (helps with local examples)", es: "⏱ Duración: *%s minutos*\n\n¿Qué país? (ayuda con ejemplos locales)"},
	"country.skip": {en: "Skip (universal)", es: "Omitir (universal)"},
	"country.type": {en: "Type your country:", es: "Escribe tu país:"},

	// materials step
	"materials.ask":      {en: "📍 Location: *%s*\n\nWhat materials do you have?", es: "📍 Ubicación: *%s*\n\n¿Qué materiales tienes?"},
	"materials.universal": {en: "Universal", es: "Universal"},
	"materials.none":     {en: "None - voice & movement only", es: "Ninguno - solo voz y movimiento"},
	"materials.basic":    {en: "Basic - chalk, paper, everyday items", es: "Básicos - tiza, papel, objetos cotidianos"},
	"materials.standard": {en: "Standard - paper, pencils, board", es: "Estándar - papel, lápices, pizarra"},
	"materials.type":     {en: "Describe the materials you have:", es: "Describe los materiales que tienes:"},

	// style step
	"style.ask":          {en: "🎨 What teaching style works best for you?", es: "🎨 ¿Qué estilo de enseñanza te funciona mejor?"},
	"style.interactive":  {en: "🎮 Interactive - games, movement, participation", es: "🎮 Interactivo - juegos, movimiento, participación"},
	"style.structured":   {en: "📋 Structured - clear steps, organized", es: "📋 Estructurado - pasos claros, organizado"},
	"style.storytelling": {en: "📖 Story-based - narratives, characters", es: "📖 Narrativo - historias, personajes"},
	"style.mixed":        {en: "🔀 Mix / No preference", es: "🔀 Mixto / Sin preferencia"},
	"style.type":         {en: "Describe the teaching style you want:", es: "Describe el estilo de enseñanza que quieres:"},

	// format step
	"format.ask":      {en: "📊 How detailed should the lesson plan be?", es: "📊 ¿Qué tan detallado debe ser el plan?"},
	"format.quick":    {en: "📋 Quick - key points in chat", es: "📋 Rápido - puntos clave en el chat"},
	"format.standard": {en: "📄 Standard - PDF + web page", es: "📄 Estándar - PDF + página web"},
	"format.full":     {en: "📚 Full - lesson + quiz + extras", es: "📚 Completo - lección + cuestionario + extras"},

	// generation
	"generating":      {en: "⏳ *Generating your lesson plan...*", es: "⏳ *Generando tu plan de lección...*"},
	"revising":        {en: "⏳ *Revising lesson...*", es: "⏳ *Revisando la lección...*"},
	"generate.failed": {en: "❌ Sorry, something went wrong while creating your lesson. Send /new to start again.", es: "❌ Lo siento, algo salió mal al crear tu lección. Envía /new para empezar de nuevo."},
	"doc.pdf":         {en: "📄 Your lesson plan is ready!", es: "📄 ¡Tu plan de lección está listo!"},
	"doc.revised":     {en: "📄 Revised lesson plan!", es: "📄 ¡Plan de lección revisado!"},
	"doc.html":        {en: "🌐 Web version - opens in any browser", es: "🌐 Versión web - se abre en cualquier navegador"},
	"doc.no_pdf":      {en: "I couldn't build a PDF this time, so here is the plan as text:", es: "Esta vez no pude crear el PDF, así que aquí está el plan en texto:"},
	"doc.shared":      {en: "📄 %s\nCreated by %s in %s", es: "📄 %s\nCreado por %s en %s"},

	// sharing
	"share.ask":  {en: "Would you like to share this lesson with other teachers around the world?", es: "¿Quieres compartir esta lección con otros docentes del mundo?"},
	"share.name": {en: "🌍 *Thank you for sharing!*\n\nWhat name should we display? (or type 'skip' to stay anonymous)", es: "🌍 *¡Gracias por compartir!*\n\n¿Qué nombre mostramos? (o escribe 'skip' para quedar en el anonimato)"},
	"share.done": {en: "✅ *Shared with the community!*\n\nTeachers in %s and beyond can now use your lesson.\nThank you for contributing to education worldwide! 🌍", es: "✅ *¡Compartida con la comunidad!*\n\nDocentes en %s y más allá ya pueden usar tu lección.\n¡Gracias por contribuir a la educación en todo el mundo! 🌍"},
	"share.world": {en: "the world", es: "el mundo"},
	"share.local": {en: "💾 Saved locally. Community sharing is unavailable right now.", es: "💾 Guardada localmente. Compartir con la comunidad no está disponible ahora."},
	"share.unavailable": {en: "Community sharing is unavailable right now.", es: "Compartir con la comunidad no está disponible ahora."},

	// follow-up
	"next.ask":     {en: "What next?", es: "¿Qué sigue?"},
	"tweak.ask":    {en: "✏️ *Tweak Mode*\n\nTell me what to change:\n• _Make it more interactive_\n• _Add more examples_\n• _Simplify the language_", es: "✏️ *Modo ajuste*\n\nDime qué cambiar:\n• _Hazla más interactiva_\n• _Agrega más ejemplos_\n• _Simplifica el lenguaje_"},
	"tweak.empty":  {en: "There is no lesson to change yet. Send /new to create one.", es: "Todavía no hay una lección para cambiar. Envía /new para crear una."},
	"quick.ask":    {en: "⚡ *Quick Lesson*\n\nTell me the topic and student ages in one message.\n\n_Example: Fractions for 8-10 year olds_", es: "⚡ *Lección rápida*\n\nDime el tema y la edad de los estudiantes en un mensaje.\n\n_Ejemplo: Fracciones para niños de 8 a 10 años_"},
	"confirm.ask":  {en: "📝 Creating lesson about:\n*%s*\n\nHow detailed?", es: "📝 Creando una lección sobre:\n*%s*\n\n¿Qué tan detallada?"},

	// voice
	"voice.disabled": {en: "Voice input is not configured. Please type your request instead.", es: "La entrada de voz no está configurada. Por favor escribe tu pedido."},
	"voice.failed":   {en: "❌ Couldn't transcribe that. Please try again or type your request.", es: "❌ No pude transcribir eso. Inténtalo de nuevo o escribe tu pedido."},
	"voice.heard":    {en: "🎤 Heard: \"%s\"", es: "🎤 Escuché: \"%s\""},

	// library
	"browse.header":      {en: "📚 *Lesson Library*\n_%d lessons from teachers worldwide_\n\n*Recent lessons:*\n\n", es: "📚 *Biblioteca de lecciones*\n_%d lecciones de docentes de todo el mundo_\n\n*Lecciones recientes:*\n\n"},
	"browse.item":        {en: "%d. %s *%s*\n   %s | Ages %s | %s\n   _by %s_\n\n", es: "%d. %s *%s*\n   %s | Edades %s | %s\n   _por %s_\n\n"},
	"browse.empty":       {en: "📚 *Lesson Library*\n\nNo lessons shared yet. Be the first!", es: "📚 *Biblioteca de lecciones*\n\nTodavía no hay lecciones compartidas. ¡Sé el primero!"},
	"browse.unavailable": {en: "📚 The lesson library is unavailable right now. Please try again later.", es: "📚 La biblioteca de lecciones no está disponible ahora. Inténtalo más tarde."},
	"search.ask":         {en: "🔍 *Search by subject:*", es: "🔍 *Buscar por materia:*"},
	"search.header":      {en: "*%s lessons*\n\n", es: "*Lecciones de %s*\n\n"},
	"search.item":        {en: "%d. %s *%s*\n   Ages %s | %s\n\n", es: "%d. %s *%s*\n   Edades %s | %s\n\n"},
	"search.empty":       {en: "No %s lessons found yet.\n\nBe the first to create one!", es: "Todavía no hay lecciones de %s.\n\n¡Sé el primero en crear una!"},
	"get.missing":        {en: "Lesson not found.", es: "No encontré esa lección."},
}
