package i18n

// Translator retrieves localized messages for Issue codes. data carries
// optional substitution parameters (e.g. "key", "min", "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "lexical":
			return "字句解析エラー"
		case "type_mismatch":
			return "型が不正です"
		case "range":
			return "範囲外の値です"
		case "missing_required":
			return "必須プロパティが不足しています"
		case "duplicate":
			return "重複しています"
		case "unresolved":
			return "参照を解決できません"
		case "cycle_detected":
			return "循環参照が検出されました"
		case "conversion":
			return "数値変換でデータが失われました"
		case "resource":
			return "リソースの上限を超えました"
		case "generic":
			return "不明なエラー"
		}
	default: // "en"
		switch code {
		case "lexical":
			return "malformed JSON"
		case "type_mismatch":
			return "value does not match the expected type"
		case "range":
			return "value out of range"
		case "missing_required":
			return "required property missing"
		case "duplicate":
			return "duplicate value"
		case "unresolved":
			return "reference could not be resolved"
		case "cycle_detected":
			return "insertion would create a cycle"
		case "conversion":
			return "numeric conversion was lossy or impossible"
		case "resource":
			return "resource limit exceeded"
		case "generic":
			return "unspecified error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation in use, not limited
// to the dictionary version shipped above.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
