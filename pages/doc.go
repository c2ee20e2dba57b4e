// Package pages walks the PDF page tree and exposes the attributes a
// converter needs from each page.
//
// # Page Tree
//
// The [PageTree] flattens the /Pages hierarchy into document order:
//
//	catalog := pages.NewCatalog(rootDict, table)
//	root, _ := catalog.Pages()
//	tree := pages.NewPageTree(root, table)
//	page, _ := tree.GetPage(0) // 0-indexed
//
// When the tree is missing or broken, [Scan] recovers the /Type /Page
// objects of the object table in object number order.
//
// # Page Access
//
// The [Page] type gives the media box (inherited from ancestors, US Letter
// when absent), resources (inherited), content streams and rotation.
//
// # Object Resolution
//
// The [ObjectResolver] interface abstracts reference lookup, so the page
// tree does not depend on the reader. *core.ObjectTable satisfies it.
package pages
