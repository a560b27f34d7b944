package editor

import (
	"errors"

	"gitlab.com/dirk.krummacker/contacts-desk/internal/validate"
)

// Message keys. Every string the editor shows to the user resolves through
// the catalog so that store and validation failures never surface as raw
// technical detail.
const (
	msgTitleList         = "title_list"
	msgTitleAdd          = "title_add"
	msgTitleEdit         = "title_edit"
	msgSearchPlaceholder = "search_placeholder"
	msgNameRequired      = "name_required"
	msgEmailMalformed    = "email_malformed"
	msgNotFound          = "not_found"
	msgStorageError      = "storage_error"
	msgConfirmDeleteOne  = "confirm_delete_one"
	msgConfirmDeleteMany = "confirm_delete_many"
	msgDeleted           = "deleted"
	msgSaved             = "saved"
	msgNoContacts        = "no_contacts"
	msgHelpList          = "help_list"
	msgHelpForm          = "help_form"
	msgHelpConfirm       = "help_confirm"
	msgLabelName         = "label_name"
	msgLabelEmail        = "label_email"
	msgLabelPhone        = "label_phone"
	msgLabelCompany      = "label_company"
	msgLabelTags         = "label_tags"
	msgLabelNotes        = "label_notes"
	msgColumnId          = "column_id"
)

// Messages is the catalog of user-facing strings for one language.
type Messages map[string]string

var locales = map[string]Messages{
	"en": {
		msgTitleList:         "Contacts",
		msgTitleAdd:          "New contact",
		msgTitleEdit:         "Edit contact",
		msgSearchPlaceholder: "Search name, email, phone, company, tags...",
		msgNameRequired:      "The name field is required.",
		msgEmailMalformed:    "Please check the email address.",
		msgNotFound:          "The contact no longer exists. The list has been refreshed.",
		msgStorageError:      "The contact database could not be accessed. See the log file for details.",
		msgConfirmDeleteOne:  "Delete the selected contact?",
		msgConfirmDeleteMany: "Delete the %d selected contacts?",
		msgDeleted:           "Deleted: %d",
		msgSaved:             "Contact saved.",
		msgNoContacts:        "No contacts found.",
		msgHelpList:          "a: add  •  enter: edit  •  space: mark  •  d: delete  •  /: search  •  q: quit",
		msgHelpForm:          "enter/ctrl+s: save  •  tab: next field  •  esc: cancel",
		msgHelpConfirm:       "y: yes  •  n: no",
		msgLabelName:         "Name",
		msgLabelEmail:        "Email",
		msgLabelPhone:        "Phone",
		msgLabelCompany:      "Company",
		msgLabelTags:         "Tags",
		msgLabelNotes:        "Notes",
		msgColumnId:          "ID",
	},
	"ru": {
		msgTitleList:         "Контакты",
		msgTitleAdd:          "Новый контакт",
		msgTitleEdit:         "Изменить контакт",
		msgSearchPlaceholder: "Поиск по имени, email, телефону, компании, тегам...",
		msgNameRequired:      "Ошибка. Поле \"ФИО\" обязательно для заполнения.",
		msgEmailMalformed:    "Ошибка. Проверьте корректность введённого email.",
		msgNotFound:          "Контакт больше не существует. Список обновлён.",
		msgStorageError:      "Не удалось открыть базу контактов. Подробности в файле журнала.",
		msgConfirmDeleteOne:  "Удалить выбранную запись?",
		msgConfirmDeleteMany: "Удалить выбранные записи (%d шт.)?",
		msgDeleted:           "Удалено: %d",
		msgSaved:             "Контакт сохранён.",
		msgNoContacts:        "Контакты не найдены.",
		msgHelpList:          "a: добавить  •  enter: изменить  •  space: отметить  •  d: удалить  •  /: поиск  •  q: выход",
		msgHelpForm:          "enter/ctrl+s: сохранить  •  tab: следующее поле  •  esc: отмена",
		msgHelpConfirm:       "y: да  •  n: нет",
		msgLabelName:         "ФИО",
		msgLabelEmail:        "Электронная почта",
		msgLabelPhone:        "Номер телефона",
		msgLabelCompany:      "Компания",
		msgLabelTags:         "Теги",
		msgLabelNotes:        "Заметки",
		msgColumnId:          "ID",
	},
}

// MessagesFor returns the catalog for the given language, falling back to
// English for anything unknown.
func MessagesFor(language string) Messages {
	if m, ok := locales[language]; ok {
		return m
	}
	return locales["en"]
}

// StorageError returns the generic storage failure message, for reporting a
// database problem after the interactive program has exited.
func (m Messages) StorageError() string {
	return m[msgStorageError]
}

// translate maps an error to a short human-readable message in the configured
// language. Unrecognized errors map to the generic storage message; the raw
// error goes to the log, never to the screen.
func (m Messages) translate(err error) string {
	var verr *validate.Error
	if errors.As(err, &verr) {
		switch verr.Reason {
		case validate.ReasonNameRequired:
			return m[msgNameRequired]
		case validate.ReasonEmailMalformed:
			return m[msgEmailMalformed]
		}
	}
	return m[msgStorageError]
}
