// Package httpclient provides a typed Go client for the guide catalog
// REST API and for direct uploads to presigned object-storage URLs.
//
// Create a client with:
//
//	store, err := token.NewFileStore("")
//	if err != nil {
//	   panic(err)
//	}
//	client, err := httpclient.New("http://localhost:8080", store)
//	if err != nil {
//	   panic(err)
//	}
//
// Then use the client to manage guides:
//
//	// List the first page of the catalog
//	guides, err := client.ListGuides(ctx, schema.Pageable{Page: 0, Size: 50})
package httpclient
