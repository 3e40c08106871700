package chat

// DefaultFallback is returned when no rule matches.
const DefaultFallback = "No estoy seguro de haber entendido. Prueba con palabras como " +
	"\"contraseña\", \"VPN\", \"impresora\" o \"actualización\", o escribe \"incidencia\" " +
	"para reportar un problema a nuestro equipo."

// DefaultRules is the canned rule table. Order is the tie-break: legal comes
// before diagnostics, and topic rules come before greetings so "hola, mi VPN
// no conecta" is answered with the VPN guide.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "legal",
			Keywords: []string{"ley", "legal", "privacidad", "datos personales", "términos", "terminos"},
			Response: "El tratamiento de tus datos se rige por la Ley de Protección de Datos Personales " +
				"y la política de uso aceptable de NEXTGEN-TI. Puedes consultar el detalle en la sección Legal.",
		},
		{
			Name:     "diagnostics",
			Keywords: []string{"diagnóstico", "diagnostico", "diagnosis", "lento", "rendimiento"},
			Response: "Desde la sección Diagnóstico puedes revisar el estado de tu equipo. " +
				"Si notas lentitud, cierra las aplicaciones que no uses y reinicia antes de reportar.",
		},
		{
			Name:      "password",
			Keywords:  []string{"contraseña", "contrasena", "password", "clave", "bloquead"},
			Response:  "Para restablecer tu contraseña ingresa a password.empresa.com y responde tus preguntas de seguridad. Revisa el artículo \"Restablecimiento de Contraseña de Dominio\".",
			ArticleID: "5",
		},
		{
			Name:      "vpn",
			Keywords:  []string{"vpn", "teletrabajo", "remoto"},
			Response:  "Descarga el cliente VPN desde el portal de autogestión y conéctate a vpn.empresa.com con tu Token MFA. Revisa el artículo \"Configuración de VPN para Teletrabajo\".",
			ArticleID: "3",
		},
		{
			Name:      "printer",
			Keywords:  []string{"impresora", "imprimir", "impresión", "impresion", "spooler"},
			Response:  "Verifica que la impresora tenga papel y reinicia el servicio de cola de impresión. Revisa el artículo \"Falla en Impresora de Red\".",
			ArticleID: "4",
		},
		{
			Name:      "update",
			Keywords:  []string{"actualiz", "update", "sistema operativo"},
			Response:  "Antes de actualizar respalda tu información y conecta el cargador. Revisa el artículo \"Actualización de Equipos de Oficina\".",
			ArticleID: "1",
		},
		{
			Name:      "news-portal",
			Keywords:  []string{"noticias", "portal", "502", "404"},
			Response:  "Si el portal de noticias no carga, limpia la caché con Ctrl+F5. Si persiste, revisa el artículo \"Recuperación del Centro de Noticias Web\".",
			ArticleID: "2",
		},
		{
			Name:     "report",
			Keywords: []string{"incidencia", "reporte", "reportar", "ticket", "falla"},
			Response: "Puedes registrar tu caso desde \"Reportar Incidencia\". Completa tus datos y una descripción detallada del problema.",
		},
		{
			Name:     "survey",
			Keywords: []string{"encuesta", "opinión", "opinion", "satisfacción", "satisfaccion"},
			Response: "¡Gracias por querer ayudarnos a mejorar! Encontrarás el enlace a la encuesta en la sección Encuesta.",
		},
		{
			Name:     "human",
			Keywords: []string{"humano", "persona", "agente", "técnico", "tecnico", "llamar"},
			Response: "Puedes comunicarte con Soporte Técnico Nivel 1 en la Ext. 4500 o escribir a helpdesk@empresa.com.",
		},
		{
			Name:     "greeting",
			Keywords: []string{"hola", "buenos días", "buenos dias", "buenas"},
			Response: "¡Hola! Soy el asistente virtual de NEXTGEN-TI. ¿En qué puedo ayudarte hoy?",
		},
		{
			Name:     "thanks",
			Keywords: []string{"gracias"},
			Response: "¡Con gusto! Si necesitas algo más, aquí estaré.",
		},
	}
}
