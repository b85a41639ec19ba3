package render

// voidElements have no closing tag and never carry children.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"embed": true, "frame": true, "hr": true, "img": true, "input": true,
	"isindex": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// boolAttrs are HTML attributes whose presence is the value.
var boolAttrs = map[string]bool{
	"async": true, "autofocus": true, "autoplay": true, "checked": true,
	"controls": true, "default": true, "defer": true, "disabled": true,
	"formnovalidate": true, "frameborder": true, "hidden": true,
	"ismap": true, "itemscope": true, "loop": true, "multiple": true,
	"muted": true, "nomodule": true, "novalidate": true, "open": true,
	"readonly": true, "required": true, "reversed": true, "scoped": true,
	"selected": true, "typemustmatch": true,
}

// DefaultExcluded lists the component kinds that are never expanded into
// markup: heavy interactive widgets whose client-side render carries no
// crawler-visible text worth the serialization cost.
var DefaultExcluded = []string{
	"Graph",
	"DataTable",
	"Store",
	"Interval",
	"Location",
	"Download",
}
