package handlers

func InitHandlers() {
	initClearButtons()
}
