package bot

const (
	textStart = "👋 Привет! Я бот для управления задачами.\n\n" +
		"Вы можете создавать задачи, используя естественный язык.\n" +
		"Например: 'Создать задачу: Подготовить отчет к завтрашнему дню. Важно!'\n\n" +
		"Также вы можете создавать задачи голосовыми сообщениями! 🎤"

	textHelp = "🤖 Доступные команды:\n\n" +
		"/mytasks - Показать задачи, назначенные мне\n" +
		"/created_tasks - Показать задачи, которые я создал\n" +
		"/assign <ID задачи> @username - Назначить задачу пользователю\n" +
		"/delete <ID задачи> - Удалить задачу\n" +
		"/edit <ID задачи> <новое название> - Изменить название задачи\n" +
		"/done <ID задачи> - Отметить задачу выполненной\n" +
		"/help - Показать это сообщение\n\n" +
		"Примеры создания задач:\n" +
		"- \"Создать задачу: Подготовить отчет к завтрашнему дню\"\n" +
		"- \"Новая задача: Связаться с клиентом @username до пятницы\"\n" +
		"- \"Задача: Обновить документацию (низкий приоритет)\"\n\n" +
		"🎤 Вы также можете создавать задачи голосовыми сообщениями!"

	textUnknownCommand = "❓ Неизвестная команда. Используйте /help, чтобы увидеть список команд."

	textNoAssignedTasks = "У вас нет назначенных задач."
	textNoCreatedTasks  = "У вас нет созданных задач."
	textAssignedHeader  = "📋 Ваши задачи:\n\n"
	textCreatedHeader   = "📋 Задачи, созданные вами:\n\n"

	usageAssign = "❌ Неверный формат команды.\n" +
		"Используйте: /assign <ID задачи> @username\n" +
		"Например: /assign 1 @ivan"
	usageDelete = "❌ Неверный формат команды.\n" +
		"Используйте: /delete <ID задачи>\n" +
		"Например: /delete 1"
	usageEdit = "❌ Неверный формат команды.\n" +
		"Используйте: /edit <ID задачи> <новое название>\n" +
		"Например: /edit 1 Новое название задачи"
	usageDone = "❌ Неверный формат команды.\n" +
		"Используйте: /done <ID задачи>\n" +
		"Например: /done 1"

	textTaskNotFound   = "❌ Задача не найдена."
	textAssignOwnOnly  = "❌ Вы можете назначать только те задачи, которые создали сами."
	textDeleteOwnOnly  = "❌ Вы можете удалять только те задачи, которые создали сами."
	textEditOwnOnly    = "❌ Вы можете редактировать только те задачи, которые создали сами."
	textDoneNotAllowed = "❌ Отметить задачу выполненной может только её создатель или исполнитель."
	textUserNotFound   = "❌ Пользователь @%s не найден."
	textDidYouMean     = "\nВозможно, вы имели в виду: %s?"
	textAdminsOnly     = "❌ Команда доступна только администраторам."

	textCreateFailed = "❌ Произошла ошибка при создании задачи. Пожалуйста, попробуйте еще раз."
	textAssignFailed = "❌ Произошла ошибка при назначении задачи. Пожалуйста, попробуйте еще раз."
	textDeleteFailed = "❌ Произошла ошибка при удалении задачи. Пожалуйста, попробуйте еще раз."
	textEditFailed   = "❌ Произошла ошибка при редактировании задачи. Пожалуйста, попробуйте еще раз."
	textDoneFailed   = "❌ Произошла ошибка при обновлении задачи. Пожалуйста, попробуйте еще раз."
	textListFailed   = "❌ Не удалось загрузить задачи. Пожалуйста, попробуйте еще раз."
	textStatsFailed  = "❌ Не удалось загрузить статистику."
	textEmptyTitle   = "❌ Не удалось определить название задачи."

	textVoiceProcessing = "🎤 Обрабатываю голосовое сообщение..."
	textVoiceRecognized = "🎤 Распознано: %s\n\nСоздаю задачу..."
	textVoiceFailed     = "❌ Не удалось распознать голосовое сообщение. " +
		"Пожалуйста, попробуйте еще раз или используйте текстовый формат."

	textDeleted = "✅ Задача #%d успешно удалена."
)

// taskTriggers start task creation when found in lower-cased message text.
var taskTriggers = []string{"создать задачу", "новая задача", "задача:"}
