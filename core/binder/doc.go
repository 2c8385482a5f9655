// Package binder decodes request bodies into handler input structs.
//
// Only JSON bodies are supported. The binder checks the media type, caps
// the body size and rejects trailing data after the first JSON value:
//
//	var req analyzeRequest
//	if err := binder.JSON()(ctx.Request(), &req); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
//
// Fields that must keep their exact JSON text (key order, duplicate keys)
// should be declared as json.RawMessage.
package binder
