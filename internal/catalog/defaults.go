package catalog

// DefaultCategories is the fixed category list in sidebar order.
var DefaultCategories = []Category{
	CategoryHardware,
	CategorySoftware,
	CategoryConnectivity,
	CategoryAccounts,
	CategoryWebApps,
}

// defaultArticles is the hardcoded knowledge base.
var defaultArticles = []Article{
	{
		ID:          "1",
		Title:       "Actualización de Equipos de Oficina",
		Category:    CategorySoftware,
		Description: "Guía para la actualización regular de software y hardware en equipos de trabajo para optimizar el rendimiento y seguridad.",
		Urgency:     UrgencyMedium,
		SolutionSteps: []string{
			"Realizar respaldo de información crítica en la nube o disco externo.",
			"Verificar compatibilidad del hardware con la nueva versión del SO.",
			"Cerrar todas las aplicaciones abiertas.",
			"Ejecutar el instalador de actualizaciones corporativo.",
			"Reiniciar el equipo y verificar el funcionamiento de las apps principales.",
		},
		TimeEstimate:  "45 - 60 minutos",
		Prerequisites: []string{"Permisos de administrador", "Cargador conectado (si es laptop)", "Internet estable"},
		Troubleshooting: []string{
			`Si recibes error "Espacio insuficiente", libera al menos 20GB.`,
			"Si el equipo se congela, forzar reinicio y reintentar.",
		},
		ContactEscalation: "Soporte Técnico Nivel 1 - Ext. 4500",
	},
	{
		ID:          "2",
		Title:       "Recuperación del Centro de Noticias Web",
		Category:    CategoryWebApps,
		Description: "Procedimiento de emergencia para restaurar el acceso al portal de noticias corporativo ante caídas del servicio.",
		Urgency:     UrgencyHigh,
		SolutionSteps: []string{
			"Verificar conectividad mediante comando ping al servidor.",
			"Limpiar caché del navegador (Ctrl+F5).",
			"Si persiste, verificar estado del servicio Nginx en el servidor.",
			"Restaurar la base de datos desde el último backup incremental.",
			"Notificar a comunicación interna sobre el restablecimiento.",
		},
		TimeEstimate:  "1 - 2 horas",
		Prerequisites: []string{"Acceso SSH al servidor", "Credenciales de Admin del Portal"},
		Troubleshooting: []string{
			"Error 502 Bad Gateway: Reiniciar el servicio PHP-FPM.",
			"Error 404: Verificar rutas de archivos estáticos.",
		},
		ContactEscalation: "Administrador de Infraestructura - ext 8800",
	},
	{
		ID:          "3",
		Title:       "Configuración de VPN para Teletrabajo",
		Category:    CategoryConnectivity,
		Description: "Pasos para configurar el acceso remoto seguro a la red corporativa mediante el cliente VPN oficial.",
		Urgency:     UrgencyMedium,
		SolutionSteps: []string{
			"Descargar el cliente VPN desde el portal de autogestión.",
			"Instalar con parámetros por defecto.",
			"Ingresar la dirección del servidor: vpn.empresa.com",
			"Autenticarse con credenciales de red y Token MFA.",
			"Verificar acceso a carpetas compartidas.",
		},
		TimeEstimate:  "15 minutos",
		Prerequisites: []string{"Token de seguridad activo", "Usuario habilitado para VPN"},
		Troubleshooting: []string{
			"Si el token es rechazado, sincronizar hora del dispositivo.",
			"Si conecta pero no navega, verificar DNS.",
		},
		ContactEscalation: "Mesa de Ayuda - helpdesk@empresa.com",
	},
	{
		ID:          "4",
		Title:       "Falla en Impresora de Red",
		Category:    CategoryHardware,
		Description: "Solución a problemas comunes de impresión, colas de trabajo bloqueadas y falta de conexión.",
		Urgency:     UrgencyLow,
		SolutionSteps: []string{
			"Verificar que la impresora esté encendida y tenga papel.",
			"Reiniciar el servicio de cola de impresión (Spooler) en Windows.",
			"Eliminar documentos pendientes en la cola.",
			"Verificar dirección IP en el panel de la impresora.",
			"Reinstalar el driver desde el servidor de impresión si es necesario.",
		},
		TimeEstimate:  "10 - 20 minutos",
		Prerequisites: []string{"Conexión a red LAN", "Nombre de la impresora"},
		Troubleshooting: []string{
			"Si imprime caracteres extraños, el driver es incorrecto.",
			"Si pide código, contactar a Administrador de Sede.",
		},
		ContactEscalation: "Soporte Local - Piso 2",
	},
	{
		ID:          "5",
		Title:       "Restablecimiento de Contraseña de Dominio",
		Category:    CategoryAccounts,
		Description: "Autogestión para el cambio de contraseña de red y desbloqueo de cuenta de usuario.",
		Urgency:     UrgencyCritical,
		SolutionSteps: []string{
			"Ingresar al portal password.empresa.com",
			"Responder las preguntas de seguridad pre-configuradas.",
			"Ingresar nueva contraseña cumpliendo requisitos de complejidad.",
			"Esperar 5 minutos para la replicación en todos los sistemas.",
			"Actualizar la contraseña en el dispositivo móvil corporativo.",
		},
		TimeEstimate:  "5 - 10 minutos",
		Prerequisites: []string{"Preguntas de seguridad configuradas previamente"},
		Troubleshooting: []string{
			"Si la cuenta está bloqueada por intentos, esperar 30 mins o llamar a soporte.",
			"Si no recuerda las preguntas, requiere validación presencial.",
		},
		ContactEscalation: "Seguridad Informática - ext 911",
	},
}

// Default returns the built-in knowledge base. It panics if the hardcoded
// data violates the catalog invariants.
func Default() *Catalog {
	c, err := New(defaultArticles, DefaultCategories)
	if err != nil {
		panic(err)
	}
	return c
}
