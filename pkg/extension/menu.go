package extension

// Names and texts of the menu entries.
const (
	sendItemName     = "TaildropExtension::Devices"
	deviceItemPrefix = "TaildropExtension::Device"
	receiveItemName  = "TaildropExtension::Receive"
	sendItemLabel    = "Taildrop Send"
	receiveItemLabel = "Taildrop Receive"
	sendItemTip      = "Send selected files."
	receiveItemTip   = "Receive files here."
	deviceItemTipFmt = "Send selected files to %s."
)

// MenuItem is a host-agnostic context menu entry. Activate is nil for items
// that only open a submenu; it returns the error of the request it made.
type MenuItem struct {
	Name      string
	Label     string
	Tip       string
	Sensitive bool
	Submenu   []MenuItem
	Activate  func() error
}

// Find returns the item with the given name, searching submenus depth first.
func Find(items []MenuItem, name string) (MenuItem, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
		if found, ok := Find(item.Submenu, name); ok {
			return found, true
		}
	}
	return MenuItem{}, false
}
